// Package jobs provides scheduled background tasks for the restaurant service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// 1. CacheEvictionJob - Runs every minute to drop expired orders from the read cache
// 2. RequestReminderJob - Runs every 30 seconds to remind waiters of requests still New
// after REQUEST_REMINDER_AFTER
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderCache, listRequestsHandler, dispatcher, remindAfter, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick. Neither job changes any status.
package jobs
