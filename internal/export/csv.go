package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/roomaudit/roomaudit/internal/audit"
)

// WriteGhostCSV writes the ghost-census report.
func WriteGhostCSV(w io.Writer, rows []audit.ReportRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"room", "room_name", "subject", "start", "end", "recurring",
		"organizer", "organizer_status", "organizer_enabled",
		"matched_internal", "resolved_internal_address",
		"participant_count", "participants", "ghost",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Resource.Address,
			row.Resource.DisplayName,
			row.Meeting.Subject,
			formatTime(row.Meeting.Start),
			formatTime(row.Meeting.End),
			strconv.FormatBool(row.Meeting.IsRecurringInstance),
			row.Organizer.Address,
			row.Organizer.Status.String(),
			formatEnabled(row.Organizer.Enabled),
			strconv.FormatBool(row.Organizer.MatchedInternal),
			row.Organizer.ResolvedInternalAddress,
			strconv.Itoa(row.ParticipantCount),
			strings.Join(row.Participants, ";"),
			strconv.FormatBool(row.Ghost),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteUtilizationCSV writes the underutilized-bookings report.
func WriteUtilizationCSV(w io.Writer, rows []audit.ReportRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"room", "room_name", "capacity", "subject", "start", "end",
		"recurring", "organizer", "participant_count", "fill_percent",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Resource.Address,
			row.Resource.DisplayName,
			strconv.Itoa(row.Resource.Capacity),
			row.Meeting.Subject,
			formatTime(row.Meeting.Start),
			formatTime(row.Meeting.End),
			strconv.FormatBool(row.Meeting.IsRecurringInstance),
			row.Organizer.Address,
			strconv.Itoa(row.ParticipantCount),
			strconv.FormatFloat(row.FillPercent, 'f', 1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatEnabled(enabled *bool) string {
	if enabled == nil {
		return ""
	}
	return strconv.FormatBool(*enabled)
}
