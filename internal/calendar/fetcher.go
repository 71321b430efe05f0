package calendar

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/roomaudit/roomaudit/internal/instrumentation"
	"github.com/roomaudit/roomaudit/internal/logging"
)

// Fetcher retrieves all meeting items for one resource within a time
// window. Retrieval is best-effort: per-item and per-chunk failures are
// logged and skipped so one bad item never hides the rest of a
// resource's calendar.
type Fetcher struct {
	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// NewFetcher constructs a Fetcher with sane defaults.
func NewFetcher(logger *slog.Logger, metrics *instrumentation.Metrics) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Fetcher{Logger: logger, Metrics: metrics}
}

// Fetch materializes every meeting in the window for resourceAddr. The
// result is complete before return; callers never observe partial
// results on failure. A resource whose calendar cannot be bound yields
// an empty result and a warning rather than an error. Only a
// precondition violation (invalid window) is returned as a hard error.
func (f *Fetcher) Fetch(ctx context.Context, sess Session, resourceAddr string, window TimeWindow) ([]MeetingRecord, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	logger := f.Logger.With(logging.Resource(resourceAddr))

	if err := sess.Bind(ctx, resourceAddr); err != nil {
		logger.WarnContext(ctx, "cannot bind resource calendar, skipping resource", logging.Err(err))
		return nil, nil
	}

	refs, err := sess.Query(ctx, resourceAddr, window.Start, window.End)
	switch {
	case err == nil:
		return f.loadAll(ctx, logger, sess, resourceAddr, refs), nil
	case errors.Is(err, ErrTooManyResults):
		logger.InfoContext(ctx, "window exceeds provider result ceiling, retrieving in month chunks")
		f.Metrics.ChunkedFallback(ctx)
		return f.fetchChunked(ctx, logger, sess, resourceAddr, window), nil
	default:
		logger.WarnContext(ctx, "window query failed, resource contributes no records", logging.Err(err))
		return nil, nil
	}
}

// fetchChunked queries each month-long sub-window independently and
// concatenates the results. A failing sub-window contributes zero
// records and does not abort the remaining chunks.
func (f *Fetcher) fetchChunked(ctx context.Context, logger *slog.Logger, sess Session, resourceAddr string, window TimeWindow) []MeetingRecord {
	var records []MeetingRecord
	for _, chunk := range window.Chunks() {
		refs, err := sess.Query(ctx, resourceAddr, chunk.Start, chunk.End)
		if err != nil {
			logger.WarnContext(ctx, "chunk query failed, chunk contributes no records",
				slog.Time("chunk_start", chunk.Start),
				slog.Time("chunk_end", chunk.End),
				logging.Err(err))
			continue
		}
		records = append(records, f.loadAll(ctx, logger, sess, resourceAddr, refs)...)
	}
	return records
}

func (f *Fetcher) loadAll(ctx context.Context, logger *slog.Logger, sess Session, resourceAddr string, refs []ItemRef) []MeetingRecord {
	records := make([]MeetingRecord, 0, len(refs))
	for _, ref := range refs {
		rec, err := sess.Load(ctx, resourceAddr, ref)
		if err != nil {
			logger.WarnContext(ctx, "item load failed, item excluded",
				slog.String("item_id", ref.ID),
				logging.Err(err))
			continue
		}
		records = append(records, rec)
	}
	return records
}
