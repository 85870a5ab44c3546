package scheduler

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guiajf/dashboard-indicadores/internal/cache"
)

func TestCacheSweepEvictsExpiredEntries(t *testing.T) {
	store, err := cache.OpenStore("file:sweepjob?mode=memory&cache=shared")
	require.NoError(t, err)
	defer store.Close()

	c := cache.New(store, zerolog.Nop())
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })

	var out string
	require.NoError(t, c.GetOrFetch("stale", time.Minute, &out, func() (interface{}, error) {
		return "value", nil
	}))

	job := NewCacheSweep(c, zerolog.Nop())
	assert.Equal(t, "cache_sweep", job.Name())

	now = now.Add(2 * time.Minute)
	require.NoError(t, job.Run())

	// Entry is gone: a fresh producer call is needed.
	called := false
	require.NoError(t, c.GetOrFetch("stale", time.Minute, &out, func() (interface{}, error) {
		called = true
		return "value", nil
	}))
	assert.True(t, called)
}
