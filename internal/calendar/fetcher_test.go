package calendar

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession scripts Bind/Query/Load behavior for fetcher tests.
type fakeSession struct {
	bindErr error
	query   func(start, end time.Time) ([]ItemRef, error)
	load    func(ref ItemRef) (MeetingRecord, error)

	queries []TimeWindow
}

func (f *fakeSession) Bind(ctx context.Context, resourceAddr string) error {
	return f.bindErr
}

func (f *fakeSession) Query(ctx context.Context, resourceAddr string, start, end time.Time) ([]ItemRef, error) {
	f.queries = append(f.queries, TimeWindow{Start: start, End: end})
	return f.query(start, end)
}

func (f *fakeSession) Load(ctx context.Context, resourceAddr string, ref ItemRef) (MeetingRecord, error) {
	if f.load != nil {
		return f.load(ref)
	}
	return MeetingRecord{Resource: resourceAddr, UniqueID: ref.ID}, nil
}

func testWindow(t *testing.T) TimeWindow {
	t.Helper()
	return TimeWindow{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestFetchSingleQuery(t *testing.T) {
	sess := &fakeSession{
		query: func(start, end time.Time) ([]ItemRef, error) {
			return []ItemRef{{ID: "a"}, {ID: "b"}}, nil
		},
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", testWindow(t))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].UniqueID)
	assert.Equal(t, "b", records[1].UniqueID)
	assert.Len(t, sess.queries, 1, "full window should be queried once")
}

func TestFetchEmptyWindow(t *testing.T) {
	sess := &fakeSession{
		query: func(start, end time.Time) ([]ItemRef, error) { return nil, nil },
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", testWindow(t))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchInvalidWindowRejected(t *testing.T) {
	now := time.Now()
	sess := &fakeSession{
		query: func(start, end time.Time) ([]ItemRef, error) { return nil, nil },
	}

	_, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", TimeWindow{Start: now, End: now})
	assert.Error(t, err)
	assert.Empty(t, sess.queries, "no I/O on precondition violation")
}

func TestFetchChunkedFallback(t *testing.T) {
	window := testWindow(t)
	sess := &fakeSession{}
	sess.query = func(start, end time.Time) ([]ItemRef, error) {
		if start.Equal(window.Start) && end.Equal(window.End) {
			return nil, ErrTooManyResults
		}
		return []ItemRef{{ID: fmt.Sprintf("item-%s", start.Format("2006-01"))}}, nil
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", window)
	require.NoError(t, err)
	require.Len(t, records, 3, "one item per month chunk")

	// First query is the full window, then one query per chunk with
	// strictly increasing, gap-free boundaries.
	require.Len(t, sess.queries, 4)
	chunks := sess.queries[1:]
	assert.Equal(t, window.Start, chunks[0].Start)
	assert.Equal(t, window.End, chunks[len(chunks)-1].End)
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].End, chunks[i].Start)
	}
}

func TestFetchChunkFailureIsolated(t *testing.T) {
	window := testWindow(t)
	sess := &fakeSession{}
	sess.query = func(start, end time.Time) ([]ItemRef, error) {
		switch {
		case start.Equal(window.Start) && end.Equal(window.End):
			return nil, ErrTooManyResults
		case start.Month() == time.February:
			return nil, errors.New("backend blew up")
		default:
			return []ItemRef{{ID: start.Format("2006-01")}}, nil
		}
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", window)
	require.NoError(t, err)
	require.Len(t, records, 2, "failing chunk contributes zero records, others survive")
	assert.Equal(t, "2025-01", records[0].UniqueID)
	assert.Equal(t, "2025-03", records[1].UniqueID)
}

func TestFetchItemLoadFailureSkipsItem(t *testing.T) {
	sess := &fakeSession{
		query: func(start, end time.Time) ([]ItemRef, error) {
			return []ItemRef{{ID: "good"}, {ID: "bad"}, {ID: "also-good"}}, nil
		},
		load: func(ref ItemRef) (MeetingRecord, error) {
			if ref.ID == "bad" {
				return MeetingRecord{}, errors.New("load failed")
			}
			return MeetingRecord{UniqueID: ref.ID}, nil
		},
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", testWindow(t))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "good", records[0].UniqueID)
	assert.Equal(t, "also-good", records[1].UniqueID)
}

func TestFetchBindFailureYieldsEmpty(t *testing.T) {
	sess := &fakeSession{
		bindErr: errors.New("access denied"),
		query: func(start, end time.Time) ([]ItemRef, error) {
			t.Fatal("query must not run when bind fails")
			return nil, nil
		},
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", testWindow(t))
	require.NoError(t, err, "bind failure degrades to empty, not an error")
	assert.Empty(t, records)
}

func TestFetchQueryFailureYieldsEmpty(t *testing.T) {
	sess := &fakeSession{
		query: func(start, end time.Time) ([]ItemRef, error) {
			return nil, errors.New("network error")
		},
	}

	records, err := NewFetcher(nil, nil).Fetch(context.Background(), sess, "room@corp.example", testWindow(t))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Len(t, sess.queries, 1, "a non-ceiling failure must not trigger chunking")
}
