package audit

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/roomaudit/roomaudit/internal/calendar"
	"github.com/roomaudit/roomaudit/internal/directory"
)

// Verdict is an Analysis decision for one meeting.
type Verdict struct {
	// Emit controls whether a report row is produced.
	Emit bool
	// Ghost flags the row as a ghost meeting.
	Ghost bool
	// FillPercent carries the utilization figure for emitted rows.
	FillPercent float64
	// Notification, when non-nil, is forwarded to the caller's mail
	// sink.
	Notification *NotificationRequest
}

// Analysis decides, per meeting, what the audit emits.
type Analysis interface {
	// Name identifies the analysis in logs and metrics.
	Name() string
	// Evaluate inspects one meeting. It must be free of I/O.
	Evaluate(res calendar.ResourceRef, rec calendar.MeetingRecord, org directory.IdentityState, parts ParticipantSet) Verdict
}

// NotificationData is the template context for ghost-meeting
// notifications.
type NotificationData struct {
	ResourceName    string
	ResourceAddress string
	Subject         string
	Start           time.Time
	End             time.Time
	Organizer       string
	OrganizerStatus string
}

// GhostAnalysis emits a row for every meeting (a full census) and flags
// those whose organizer is Disabled or NotFound. When notifications are
// enabled, each ghost-flagged meeting with a non-empty participant set
// also yields a NotificationRequest.
type GhostAnalysis struct {
	// Notify enables notification requests.
	Notify bool
	// From is the sender address for notifications.
	From string
	// SubjectTemplate and BodyTemplate render the notification from a
	// NotificationData. Nil templates fall back to built-in wording.
	SubjectTemplate *template.Template
	BodyTemplate    *template.Template
}

// Name implements Analysis.
func (g *GhostAnalysis) Name() string { return "ghosts" }

// Evaluate implements Analysis.
func (g *GhostAnalysis) Evaluate(res calendar.ResourceRef, rec calendar.MeetingRecord, org directory.IdentityState, parts ParticipantSet) Verdict {
	v := Verdict{Emit: true, Ghost: org.Ghost()}
	if !v.Ghost || !g.Notify || parts.Count == 0 {
		return v
	}

	data := NotificationData{
		ResourceName:    res.DisplayName,
		ResourceAddress: res.Address,
		Subject:         rec.Subject,
		Start:           rec.Start,
		End:             rec.End,
		Organizer:       org.Address,
		OrganizerStatus: org.Status.String(),
	}
	v.Notification = &NotificationRequest{
		From:    g.From,
		To:      parts.Addresses,
		Subject: renderTemplate(g.SubjectTemplate, data, defaultSubject(data)),
		Body:    renderTemplate(g.BodyTemplate, data, defaultBody(data)),
	}
	return v
}

// UtilizationAnalysis emits a row only for meetings that book a room of
// at least MinimumCapacity for at most MaxParticipants people. It never
// produces notifications.
type UtilizationAnalysis struct {
	MinimumCapacity int
	MaxParticipants int
}

// Name implements Analysis.
func (u *UtilizationAnalysis) Name() string { return "utilization" }

// Evaluate implements Analysis.
func (u *UtilizationAnalysis) Evaluate(res calendar.ResourceRef, _ calendar.MeetingRecord, _ directory.IdentityState, parts ParticipantSet) Verdict {
	if res.Capacity < u.MinimumCapacity || parts.Count > u.MaxParticipants {
		return Verdict{}
	}
	v := Verdict{Emit: true}
	if res.Capacity > 0 {
		v.FillPercent = float64(parts.Count) / float64(res.Capacity) * 100
	}
	return v
}

// renderTemplate executes tmpl with data, falling back to a built-in
// rendering when the template is nil or fails to execute. Notification
// wording must never abort an audit run.
func renderTemplate(tmpl *template.Template, data NotificationData, fallback string) string {
	if tmpl == nil {
		return fallback
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return fallback
	}
	return sb.String()
}

func defaultSubject(data NotificationData) string {
	return fmt.Sprintf("Meeting %q in %s has an unresolvable organizer", data.Subject, data.ResourceName)
}

func defaultBody(data NotificationData) string {
	return fmt.Sprintf(
		"The meeting %q booked in %s (%s) from %s to %s was organized by %s, "+
			"whose account is %s. Please re-book the room under an active account "+
			"or cancel the booking.\n",
		data.Subject,
		data.ResourceName,
		data.ResourceAddress,
		data.Start.Format(time.RFC1123),
		data.End.Format(time.RFC1123),
		data.Organizer,
		data.OrganizerStatus,
	)
}
