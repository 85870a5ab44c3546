package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/guiajf/dashboard-indicadores/internal/cache"
)

// CacheSweep evicts expired cache entries so the in-memory store does not
// accumulate dead rows between requests.
type CacheSweep struct {
	cache *cache.Cache
	log   zerolog.Logger
}

// NewCacheSweep creates the sweep job.
func NewCacheSweep(c *cache.Cache, log zerolog.Logger) *CacheSweep {
	return &CacheSweep{
		cache: c,
		log:   log.With().Str("job", "cache_sweep").Logger(),
	}
}

// Name implements Job.
func (j *CacheSweep) Name() string { return "cache_sweep" }

// Run implements Job.
func (j *CacheSweep) Run() error {
	evicted, err := j.cache.Sweep()
	if err != nil {
		return err
	}
	if evicted > 0 {
		j.log.Info().Int64("evicted", evicted).Msg("Evicted expired cache entries")
	}
	return nil
}
