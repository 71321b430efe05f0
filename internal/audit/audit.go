package audit

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/roomaudit/roomaudit/internal/calendar"
	"github.com/roomaudit/roomaudit/internal/directory"
	"github.com/roomaudit/roomaudit/internal/instrumentation"
	"github.com/roomaudit/roomaudit/internal/logging"
)

// SessionSource checks calendar sessions out for one resource at a
// time. The release func must be called when the resource scan is
// done; it returns the session to the pool.
type SessionSource interface {
	Checkout(ctx context.Context, resourceAddr string) (calendar.Session, func(), error)
}

// Auditor runs meeting audits. All collaborators are injected; the
// zero values of Logger, Clock, Metrics and Tracer get sane defaults
// from New.
type Auditor struct {
	Sessions  SessionSource
	Directory directory.Directory
	OrgSuffix string

	Logger  *slog.Logger
	Clock   func() time.Time
	Metrics *instrumentation.Metrics
	Tracer  trace.Tracer
}

// New constructs an Auditor with sane defaults.
func New(sessions SessionSource, dir directory.Directory, orgSuffix string, logger *slog.Logger) *Auditor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Auditor{
		Sessions:  sessions,
		Directory: dir,
		OrgSuffix: orgSuffix,
		Logger:    logger,
		Clock:     time.Now,
		Tracer:    noop.NewTracerProvider().Tracer("audit"),
	}
}

// Result is the output of one audit run.
type Result struct {
	RunID         string
	Rows          []ReportRow
	Notifications []NotificationRequest
	// ResourceErrors counts resources that contributed no data because
	// their calendar could not be reached. Used for the exit summary;
	// partial runs are still valid reports.
	ResourceErrors int
}

// Run audits every resource in order against the window using the
// given analysis. Resources are processed sequentially; a failure on
// one resource is logged and does not stop the others. The only hard
// error is a precondition violation, raised before any I/O.
func (a *Auditor) Run(ctx context.Context, resources []calendar.ResourceRef, window calendar.TimeWindow, an Analysis) (Result, error) {
	if err := window.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString()}
	logger := logging.WithRunID(a.Logger, res.RunID).With(logging.Analysis(an.Name()))
	cache := directory.NewCache(a.Directory, a.OrgSuffix)
	fetcher := calendar.NewFetcher(logger, a.Metrics)

	logger.InfoContext(ctx, "starting audit run",
		slog.Int("resources", len(resources)),
		slog.Time("window_start", window.Start),
		slog.Time("window_end", window.End))

	for _, resource := range resources {
		a.auditResource(ctx, logger, fetcher, cache, resource, window, an, &res)
	}

	logger.InfoContext(ctx, "audit run complete",
		slog.Int("rows", len(res.Rows)),
		slog.Int("notifications", len(res.Notifications)),
		slog.Int("distinct_organizers", cache.Len()),
		slog.Int("resource_errors", res.ResourceErrors))
	return res, nil
}

func (a *Auditor) auditResource(ctx context.Context, logger *slog.Logger, fetcher *calendar.Fetcher, cache *directory.Cache, resource calendar.ResourceRef, window calendar.TimeWindow, an Analysis, res *Result) {
	ctx, span := a.tracer().Start(ctx, "audit.resource")
	defer span.End()
	start := a.clock()()
	defer func() {
		a.Metrics.ResourceScanDuration(ctx, a.clock()().Sub(start).Seconds())
	}()

	rlog := logger.With(logging.Resource(resource.Address))

	sess, release, err := a.Sessions.Checkout(ctx, resource.Address)
	if err != nil {
		rlog.WarnContext(ctx, "cannot obtain calendar session, skipping resource", logging.Err(err))
		res.ResourceErrors++
		return
	}
	defer release()

	records, err := fetcher.Fetch(ctx, sess, resource.Address, window)
	if err != nil {
		// Fetch only errors on precondition violations, which Run has
		// already ruled out; treat defensively as a skipped resource.
		rlog.WarnContext(ctx, "fetch failed, skipping resource", logging.Err(err))
		res.ResourceErrors++
		return
	}
	a.Metrics.MeetingsScanned(ctx, an.Name(), int64(len(records)))
	rlog.DebugContext(ctx, "fetched resource window", slog.Int("meetings", len(records)))

	for _, rec := range records {
		if rec.Organizer == "" {
			continue
		}

		state, err := cache.Classify(ctx, rec.Organizer)
		if err != nil {
			// Degrade this row rather than aborting the run: an
			// unreachable directory means the organizer cannot be
			// confirmed either way.
			rlog.WarnContext(ctx, "organizer classification failed, treating as not found",
				logging.Meeting(rec.UniqueID),
				logging.UserHash(rec.Organizer),
				logging.Err(err))
			state = directory.IdentityState{
				Address: directory.Normalize(rec.Organizer),
				Status:  directory.StatusNotFound,
			}
			a.Metrics.DirectoryLookup(ctx, logging.StatusError)
		} else {
			a.Metrics.DirectoryLookup(ctx, logging.StatusSuccess)
		}

		parts := Participants(rec.Organizer, rec.RequiredAttendees, rec.OptionalAttendees, resource.Address)
		verdict := an.Evaluate(resource, rec, state, parts)
		if !verdict.Emit {
			continue
		}

		res.Rows = append(res.Rows, ReportRow{
			Resource:         resource,
			Meeting:          rec,
			Organizer:        state,
			ParticipantCount: parts.Count,
			Participants:     parts.Addresses,
			Ghost:            verdict.Ghost,
			FillPercent:      verdict.FillPercent,
		})
		if verdict.Ghost {
			a.Metrics.GhostMeeting(ctx)
		}
		if verdict.Notification != nil {
			res.Notifications = append(res.Notifications, *verdict.Notification)
			a.Metrics.NotificationQueued(ctx)
		}
	}
}

func (a *Auditor) tracer() trace.Tracer {
	if a.Tracer == nil {
		return noop.NewTracerProvider().Tracer("audit")
	}
	return a.Tracer
}

func (a *Auditor) clock() func() time.Time {
	if a.Clock == nil {
		return time.Now
	}
	return a.Clock
}
