package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency.
const (
	attrAnalysis = "analysis"
	attrResult   = "result"
)

// Metrics provides methods for recording audit pipeline metrics.
// The zero value and a nil pointer are valid no-op recorders.
type Metrics struct {
	meetingsScanned    metric.Int64Counter
	ghostMeetings      metric.Int64Counter
	directoryLookups   metric.Int64Counter
	chunkedFallbacks   metric.Int64Counter
	notificationsTotal metric.Int64Counter
	resourceScanTime   metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.meetingsScanned, err = meter.Int64Counter(
		"meetings_scanned_total",
		metric.WithDescription("Total number of calendar items inspected"),
		metric.WithUnit("{meeting}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meetings_scanned_total counter: %w", err)
	}

	m.ghostMeetings, err = meter.Int64Counter(
		"ghost_meetings_total",
		metric.WithDescription("Total number of meetings flagged as ghost meetings"),
		metric.WithUnit("{meeting}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ghost_meetings_total counter: %w", err)
	}

	m.directoryLookups, err = meter.Int64Counter(
		"directory_lookups_total",
		metric.WithDescription("Total number of directory lookups performed"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory_lookups_total counter: %w", err)
	}

	m.chunkedFallbacks, err = meter.Int64Counter(
		"chunked_fallbacks_total",
		metric.WithDescription("Number of windows retried in month chunks after hitting the provider result ceiling"),
		metric.WithUnit("{window}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chunked_fallbacks_total counter: %w", err)
	}

	m.notificationsTotal, err = meter.Int64Counter(
		"notifications_queued_total",
		metric.WithDescription("Number of ghost-meeting notification requests emitted"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifications_queued_total counter: %w", err)
	}

	m.resourceScanTime, err = meter.Float64Histogram(
		"resource_scan_duration_seconds",
		metric.WithDescription("Time spent fetching and auditing one resource's calendar"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource_scan_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// MeetingsScanned records n calendar items inspected for an analysis.
func (m *Metrics) MeetingsScanned(ctx context.Context, analysis string, n int64) {
	if m == nil || m.meetingsScanned == nil {
		return
	}
	m.meetingsScanned.Add(ctx, n, metric.WithAttributes(
		attribute.String(attrAnalysis, analysis),
	))
}

// GhostMeeting records one meeting flagged as a ghost meeting.
func (m *Metrics) GhostMeeting(ctx context.Context) {
	if m == nil || m.ghostMeetings == nil {
		return
	}
	m.ghostMeetings.Add(ctx, 1)
}

// DirectoryLookup records one directory lookup with its outcome.
func (m *Metrics) DirectoryLookup(ctx context.Context, result string) {
	if m == nil || m.directoryLookups == nil {
		return
	}
	m.directoryLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// ChunkedFallback records one window that fell back to chunked retrieval.
func (m *Metrics) ChunkedFallback(ctx context.Context) {
	if m == nil || m.chunkedFallbacks == nil {
		return
	}
	m.chunkedFallbacks.Add(ctx, 1)
}

// NotificationQueued records one emitted notification request.
func (m *Metrics) NotificationQueued(ctx context.Context) {
	if m == nil || m.notificationsTotal == nil {
		return
	}
	m.notificationsTotal.Add(ctx, 1)
}

// ResourceScanDuration records the wall time spent on one resource.
func (m *Metrics) ResourceScanDuration(ctx context.Context, seconds float64) {
	if m == nil || m.resourceScanTime == nil {
		return
	}
	m.resourceScanTime.Record(ctx, seconds)
}
