package workspace

import (
	"context"
	"fmt"
	"time"

	calendar_v3 "google.golang.org/api/calendar/v3"

	"github.com/roomaudit/roomaudit/internal/calendar"
)

// DefaultMaxQueryItems is the per-query item ceiling. Windows that
// return more refs than this are reported as calendar.ErrTooManyResults
// so the fetcher retries in month chunks.
const DefaultMaxQueryItems = 2500

// pageSize for the identifying-properties listing.
const pageSize = 250

// CalendarSession implements calendar.Session over the Google Calendar
// API. A session is bound to the subject it impersonates; obtain one
// through SessionPool rather than sharing instances across resources.
type CalendarSession struct {
	svc      *calendar_v3.Service
	subject  string
	maxItems int
}

// Subject returns the impersonated identity this session acts as.
func (s *CalendarSession) Subject() string {
	return s.subject
}

// Bind implements calendar.Session. It verifies the resource calendar
// is reachable before any window query runs.
func (s *CalendarSession) Bind(ctx context.Context, resourceAddr string) error {
	_, err := s.svc.Calendars.Get(resourceAddr).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to bind calendar %s: %w", resourceAddr, err)
	}
	return nil
}

// Query implements calendar.Session. It lists identifying properties
// only; full items are loaded individually through Load.
func (s *CalendarSession) Query(ctx context.Context, resourceAddr string, start, end time.Time) ([]calendar.ItemRef, error) {
	max := s.maxItems
	if max <= 0 {
		max = DefaultMaxQueryItems
	}

	var refs []calendar.ItemRef
	pageToken := ""
	for {
		call := s.svc.Events.List(resourceAddr).
			TimeMin(start.Format(time.RFC3339)).
			TimeMax(end.Format(time.RFC3339)).
			SingleEvents(true).
			OrderBy("startTime").
			MaxResults(pageSize).
			Fields("items(id)", "nextPageToken").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list events for %s: %w", resourceAddr, err)
		}
		for _, ev := range page.Items {
			refs = append(refs, calendar.ItemRef{ID: ev.Id})
			if len(refs) > max {
				return nil, calendar.ErrTooManyResults
			}
		}
		if page.NextPageToken == "" {
			return refs, nil
		}
		pageToken = page.NextPageToken
	}
}

// Load implements calendar.Session.
func (s *CalendarSession) Load(ctx context.Context, resourceAddr string, ref calendar.ItemRef) (calendar.MeetingRecord, error) {
	ev, err := s.svc.Events.Get(resourceAddr, ref.ID).Context(ctx).Do()
	if err != nil {
		return calendar.MeetingRecord{}, fmt.Errorf("failed to load event %s: %w", ref.ID, err)
	}
	return toMeetingRecord(resourceAddr, ev), nil
}

// toMeetingRecord converts a Google Calendar event to a MeetingRecord.
// Empty attendee addresses are dropped here, at the source.
func toMeetingRecord(resourceAddr string, ev *calendar_v3.Event) calendar.MeetingRecord {
	rec := calendar.MeetingRecord{
		Resource:            resourceAddr,
		UniqueID:            ev.Id,
		Subject:             ev.Summary,
		IsRecurringInstance: ev.RecurringEventId != "",
	}

	if ev.Start != nil {
		rec.Start = parseEventTime(ev.Start)
	}
	if ev.End != nil {
		rec.End = parseEventTime(ev.End)
	}
	if ev.Organizer != nil {
		rec.Organizer = ev.Organizer.Email
	}

	for _, att := range ev.Attendees {
		if att.Email == "" {
			continue
		}
		if att.Optional {
			rec.OptionalAttendees = append(rec.OptionalAttendees, att.Email)
		} else {
			rec.RequiredAttendees = append(rec.RequiredAttendees, att.Email)
		}
	}
	return rec
}

func parseEventTime(edt *calendar_v3.EventDateTime) time.Time {
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
