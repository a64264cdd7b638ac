package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	cacheEvictionJob   *CacheEvictionJob
	requestReminderJob *RequestReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	cache Purger,
	listRequestsHandler queries.ListRequestsQueryHandler,
	reminder Reminder,
	remindAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cacheEvictionJob:   NewCacheEvictionJob(cache, logger),
		requestReminderJob: NewRequestReminderJob(listRequestsHandler, reminder, remindAfter, nil, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.cacheEvictionJob.Start(); err != nil {
		return fmt.Errorf("failed to start cache eviction job: %w", err)
	}

	if err := jm.requestReminderJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.cacheEvictionJob.Stop()
		return fmt.Errorf("failed to start request reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.requestReminderJob.Stop()
	jm.cacheEvictionJob.Stop()
}
