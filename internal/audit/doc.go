// Package audit orchestrates the meeting audit pipeline.
//
// An Auditor walks a list of resources sequentially, fetches each
// resource's calendar window, classifies the organizer of every meeting
// through a shared per-run cache, resolves the distinct participant
// set, and applies an Analysis to decide whether a report row and/or a
// notification request is emitted.
//
// Two analyses exist: GhostAnalysis produces a full census of meetings
// with a flag on those whose organizer cannot be confirmed as active,
// and UtilizationAnalysis reports bookings where a high-capacity room
// holds very few people.
//
// Resources are processed one at a time on purpose: a calendar session
// acts as one identity at a time, so sessions are checked out of a pool
// per resource rather than shared across goroutines.
package audit
