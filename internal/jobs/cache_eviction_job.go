package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Purger drops expired entries and reports how many went.
type Purger interface {
	Purge() int
}

// CacheEvictionJob removes expired orders from the read cache once a minute.
type CacheEvictionJob struct {
	cache  Purger
	cron   *cron.Cron
	logger *slog.Logger
}

// NewCacheEvictionJob creates a job purging expired entries from cache.
func NewCacheEvictionJob(cache Purger, logger *slog.Logger) *CacheEvictionJob {
	return &CacheEvictionJob{
		cache:  cache,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "cache_eviction_job"),
	}
}

// Start schedules the eviction at second zero of every minute.
func (j *CacheEvictionJob) Start() error {
	if _, err := j.cron.AddFunc("0 * * * * *", func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache eviction job started (running every minute)")
	return nil
}

// Run performs one eviction pass.
func (j *CacheEvictionJob) Run(ctx context.Context) {
	if n := j.cache.Purge(); n > 0 {
		j.logger.DebugContext(ctx, "Expired orders evicted", "count", n)
	}
}

// Stop waits for a running purge to finish.
func (j *CacheEvictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cache eviction job stopped")
}
