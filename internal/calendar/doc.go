// Package calendar defines the provider-neutral calendar model and the
// window fetcher used by the audit pipeline.
//
// The package offers:
//   - ResourceRef, TimeWindow and MeetingRecord value types
//   - A narrow Session interface describing the calendar surface the
//     fetcher needs (bind, bounded query, per-item load)
//   - Fetcher, which retrieves all meetings for one resource within a
//     time window and transparently falls back to month-sized chunks
//     when the provider signals its result-size ceiling
//
// Concrete backends implement Session; see the workspace package for the
// Google Workspace implementation.
package calendar
