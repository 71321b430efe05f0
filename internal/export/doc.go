// Package export writes audit report rows to CSV.
//
// The audit core returns in-memory rows; this package is the report
// sink. Each analysis has its own column set because the interesting
// fields differ: the ghost census carries the organizer's identity
// state, the utilization report carries capacity and fill figures.
package export
