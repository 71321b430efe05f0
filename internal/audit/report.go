package audit

import (
	"github.com/roomaudit/roomaudit/internal/calendar"
	"github.com/roomaudit/roomaudit/internal/directory"
)

// ReportRow is one line of audit output. Rows are appended in
// resource-then-meeting iteration order; no ordering is guaranteed
// beyond that.
type ReportRow struct {
	Resource  calendar.ResourceRef
	Meeting   calendar.MeetingRecord
	Organizer directory.IdentityState

	ParticipantCount int
	Participants     []string

	// Ghost is set by the ghost analysis when the organizer cannot be
	// confirmed as active.
	Ghost bool

	// FillPercent is set by the utilization analysis: participants as a
	// percentage of room capacity. Zero when capacity is unknown.
	FillPercent float64
}

// NotificationRequest asks the caller's mail sink to notify the
// participants of a ghost meeting. The core never sends mail itself.
type NotificationRequest struct {
	From    string
	To      []string
	Subject string
	Body    string
}
