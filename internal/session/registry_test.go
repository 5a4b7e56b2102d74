package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()

	require.Empty(t, r.ListIDs())
	require.Zero(t, r.Len())

	_, ok := r.Get("default")
	require.False(t, ok)
}

func TestRegistry_EnsureCreatesOnce(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	r := NewRegistry()
	r.now = func() time.Time { return created }

	require.True(t, r.Ensure("default"))
	require.False(t, r.Ensure("default"))

	s, ok := r.Get("default")
	require.True(t, ok)
	assert.Equal(t, "default", s.ID)
	assert.Zero(t, s.MessageCount)
	assert.Equal(t, created, s.CreatedAt)
}

func TestRegistry_IncrementCreatesAndCounts(t *testing.T) {
	r := NewRegistry()

	require.Equal(t, 1, r.Increment("a"))
	require.Equal(t, 2, r.Increment("a"))
	require.Equal(t, 1, r.Increment("b"))

	require.Equal(t, []string{"a", "b"}, r.ListIDs())
}

func TestRegistry_GetReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Increment("a")

	s, _ := r.Get("a")
	s.MessageCount = 100

	fresh, _ := r.Get("a")
	require.Equal(t, 1, fresh.MessageCount)
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry()
	r.Increment("a")
	r.Increment("b")

	r.Clear()

	require.Empty(t, r.ListIDs())
	require.Zero(t, r.Len())
}

// TestRegistry_ConcurrentIncrements verifies no increment is lost under contention.
// Run with: go test -race -run TestRegistry_ConcurrentIncrements.
func TestRegistry_ConcurrentIncrements(t *testing.T) {
	const (
		writers    = 8
		iterations = 500
	)

	r := NewRegistry()

	var wg sync.WaitGroup

	for range writers {
		wg.Go(func() {
			for range iterations {
				r.Ensure("default")
				r.Increment("default")
				_ = r.ListIDs()
			}
		})
	}

	wg.Wait()

	s, ok := r.Get("default")
	require.True(t, ok)
	require.Equal(t, writers*iterations, s.MessageCount)
}
