package calendar

import (
	"fmt"
	"time"
)

// Bounds applied when building a window from months-behind/ahead
// configuration.
const (
	MaxMonthsBehind = 12
	MaxMonthsAhead  = 36
)

// TimeWindow is the half-open audit horizon [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds the audit horizon around now from
// months-behind/ahead configuration. Values outside the supported
// bounds are clamped rather than rejected; a window that clamps down
// to zero width is a configuration error.
func NewTimeWindow(now time.Time, monthsBehind, monthsAhead int) (TimeWindow, error) {
	behind := clamp(monthsBehind, 0, MaxMonthsBehind)
	ahead := clamp(monthsAhead, 0, MaxMonthsAhead)

	w := TimeWindow{
		Start: now.AddDate(0, -behind, 0),
		End:   now.AddDate(0, ahead, 0),
	}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

// Validate rejects empty or inverted windows. Callers must validate
// before any I/O is attempted.
func (w TimeWindow) Validate() error {
	if !w.Start.Before(w.End) {
		return fmt.Errorf("invalid window: start %s is not before end %s",
			w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}
	return nil
}

// Chunks splits the window into consecutive month-long sub-windows
// covering [Start, End) with no gaps and no overlaps. The last chunk is
// clipped to End.
func (w TimeWindow) Chunks() []TimeWindow {
	var chunks []TimeWindow
	for cur := w.Start; cur.Before(w.End); {
		next := cur.AddDate(0, 1, 0)
		if next.After(w.End) {
			next = w.End
		}
		chunks = append(chunks, TimeWindow{Start: cur, End: next})
		cur = next
	}
	return chunks
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
