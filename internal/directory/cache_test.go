package directory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLooksUpEachAddressOnce(t *testing.T) {
	dir := newFakeDirectory(map[string]Entry{
		"alice@corp.example": {Address: "alice@corp.example", Type: "user", Enabled: boolPtr(true)},
	})
	cache := NewCache(dir, "corp.example")

	for i := 0; i < 5; i++ {
		state, err := cache.Classify(context.Background(), "alice@corp.example")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, state.Status)
	}

	assert.Equal(t, 1, dir.lookups["alice@corp.example"],
		"repeated classification of one organizer must hit the directory once")
	assert.Equal(t, 1, cache.Len())
}

func TestCacheNormalizesKeys(t *testing.T) {
	dir := newFakeDirectory(map[string]Entry{
		"alice@corp.example": {Address: "alice@corp.example", Type: "user", Enabled: boolPtr(true)},
	})
	cache := NewCache(dir, "corp.example")

	_, err := cache.Classify(context.Background(), "alice@corp.example")
	require.NoError(t, err)
	_, err = cache.Classify(context.Background(), "Alice@CORP.example")
	require.NoError(t, err)

	assert.Equal(t, 1, dir.lookups["alice@corp.example"])
	assert.Equal(t, 1, cache.Len())
}

func TestCacheConcurrentAccess(t *testing.T) {
	dir := newFakeDirectory(map[string]Entry{
		"alice@corp.example": {Address: "alice@corp.example", Type: "user", Enabled: boolPtr(true)},
		"bob@corp.example":   {Address: "bob@corp.example", Type: "user", Enabled: boolPtr(false)},
	})
	cache := NewCache(dir, "corp.example")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		addr := "alice@corp.example"
		if i%2 == 1 {
			addr = "bob@corp.example"
		}
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			_, err := cache.Classify(context.Background(), addr)
			assert.NoError(t, err)
		}(addr)
	}
	wg.Wait()

	assert.Equal(t, 2, cache.Len())
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	dir := newFakeDirectory(map[string]Entry{
		"alice@corp.example": {Address: "alice@corp.example", Type: "user", Enabled: boolPtr(true)},
	})
	dir.err = errors.New("directory unreachable")
	cache := NewCache(dir, "corp.example")

	_, err := cache.Classify(context.Background(), "alice@corp.example")
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())

	// Directory recovers; the next classification succeeds.
	dir.err = nil
	state, err := cache.Classify(context.Background(), "alice@corp.example")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, state.Status)
}
