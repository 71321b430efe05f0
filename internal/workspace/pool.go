package workspace

import (
	"context"
	"fmt"
	"sync"

	calendar_v3 "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/roomaudit/roomaudit/internal/calendar"
	"github.com/roomaudit/roomaudit/internal/google"
)

// SessionPool hands out calendar sessions scoped to one impersonated
// subject at a time. A checked-out session belongs to its caller until
// the release func is called; sessions are reused per subject because
// establishing one means a token exchange.
//
// The audit baseline runs sequentially, but the pool is safe for
// concurrent checkouts should a parallel runner ever sit on top.
type SessionPool struct {
	creds    *google.Credentials
	maxItems int

	mu   sync.Mutex
	idle map[string][]*CalendarSession
}

// NewSessionPool builds a pool over the given credentials. maxItems
// bounds each session's per-query result count; pass 0 for the
// default.
func NewSessionPool(creds *google.Credentials, maxItems int) *SessionPool {
	return &SessionPool{
		creds:    creds,
		maxItems: maxItems,
		idle:     make(map[string][]*CalendarSession),
	}
}

// Checkout implements audit.SessionSource. The session impersonates
// the resource whose calendar it will read.
func (p *SessionPool) Checkout(ctx context.Context, resourceAddr string) (calendar.Session, func(), error) {
	sess, err := p.take(ctx, resourceAddr)
	if err != nil {
		return nil, nil, err
	}
	release := func() { p.put(resourceAddr, sess) }
	return sess, release, nil
}

func (p *SessionPool) take(ctx context.Context, subject string) (*CalendarSession, error) {
	p.mu.Lock()
	if queue := p.idle[subject]; len(queue) > 0 {
		sess := queue[len(queue)-1]
		p.idle[subject] = queue[:len(queue)-1]
		p.mu.Unlock()
		return sess, nil
	}
	p.mu.Unlock()

	client, err := p.creds.ClientForSubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to impersonate %s: %w", subject, err)
	}
	svc, err := calendar_v3.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service for %s: %w", subject, err)
	}
	return &CalendarSession{svc: svc, subject: subject, maxItems: p.maxItems}, nil
}

func (p *SessionPool) put(subject string, sess *CalendarSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idle[subject] = append(p.idle[subject], sess)
}
