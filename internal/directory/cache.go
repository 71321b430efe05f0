package directory

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes classification results for the lifetime of one audit
// run. Each distinct address is classified at most once; concurrent
// requests for the same missing address share a single computation.
//
// Lookup errors are not cached: a degraded directory should not pin a
// wrong answer for the rest of the run.
type Cache struct {
	dir    Directory
	suffix string

	mu     sync.Mutex
	states map[string]IdentityState
	group  singleflight.Group
}

// NewCache builds a per-run classification cache over dir with the
// given organization suffix.
func NewCache(dir Directory, orgSuffix string) *Cache {
	return &Cache{
		dir:    dir,
		suffix: orgSuffix,
		states: make(map[string]IdentityState),
	}
}

// Classify returns the cached identity state for address, computing it
// on first use.
func (c *Cache) Classify(ctx context.Context, address string) (IdentityState, error) {
	key := Normalize(address)

	c.mu.Lock()
	if state, ok := c.states[key]; ok {
		c.mu.Unlock()
		return state, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		state, err := Classify(ctx, c.dir, address, c.suffix)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.states[key] = state
		c.mu.Unlock()
		return state, nil
	})
	if err != nil {
		return IdentityState{}, err
	}
	return v.(IdentityState), nil
}

// Len reports how many distinct addresses have been classified.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.states)
}
