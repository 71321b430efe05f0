package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrTooManyResults is returned by Session.Query when the provider's
// result-size ceiling was exceeded for the queried window. It is a
// recognized condition, not a failure: the fetcher reacts by splitting
// the window into month-sized chunks.
var ErrTooManyResults = errors.New("calendar: query exceeded provider result ceiling")

// ResourceRef identifies a bookable resource (usually a meeting room).
type ResourceRef struct {
	Address     string
	DisplayName string
	Capacity    int // 0 when unknown
}

// ItemRef identifies one calendar item within a resource's calendar.
// Query returns refs only; the full property set is loaded per item.
type ItemRef struct {
	ID string
}

// MeetingRecord is one normalized calendar item. Records are read-only
// downstream of the fetcher.
type MeetingRecord struct {
	Resource            string // owning resource address
	UniqueID            string // opaque, stable per item
	Subject             string
	Start               time.Time
	End                 time.Time
	IsRecurringInstance bool
	Organizer           string // may be empty
	RequiredAttendees   []string
	OptionalAttendees   []string
}

// Session is the narrow calendar surface required by the fetcher. A
// Session is scoped to the acting-as identity it was created for and
// must not be shared across resources concurrently; see the session
// pool in the workspace package.
type Session interface {
	// Bind verifies that the resource's calendar is reachable for this
	// session before any query is attempted.
	Bind(ctx context.Context, resourceAddr string) error

	// Query returns refs for all items overlapping [start, end),
	// requesting identifying properties only. It returns
	// ErrTooManyResults when the provider's result ceiling was hit.
	Query(ctx context.Context, resourceAddr string, start, end time.Time) ([]ItemRef, error)

	// Load fetches the full property set for one item.
	Load(ctx context.Context, resourceAddr string, ref ItemRef) (MeetingRecord, error)
}
