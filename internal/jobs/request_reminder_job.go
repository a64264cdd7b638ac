package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Reminder tells staff that a request has been waiting too long.
type Reminder interface {
	RequestReminder(ctx context.Context, r *request.Request, waiting time.Duration)
}

// RequestReminderJob looks for requests still New after a grace period and reminds the
// waiter of the table once per request. It only reads; no status changes.
type RequestReminderJob struct {
	handler  queries.ListRequestsQueryHandler
	reminder Reminder
	after    time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger

	mu       sync.Mutex
	reminded map[uuid.UUID]struct{}
}

// NewRequestReminderJob creates a job reminding about requests still New after the
// given duration. A nil now means time.Now.
func NewRequestReminderJob(
	handler queries.ListRequestsQueryHandler,
	reminder Reminder,
	after time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *RequestReminderJob {
	if now == nil {
		now = time.Now
	}
	return &RequestReminderJob{
		handler:  handler,
		reminder: reminder,
		after:    after,
		now:      now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "request_reminder_job"),
		reminded: make(map[uuid.UUID]struct{}),
	}
}

// Start schedules the job every 30 seconds.
func (j *RequestReminderJob) Start() error {
	if _, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Request reminder job started (running every 30 seconds)")
	return nil
}

// Run sends one reminder per overdue request not reminded before and returns how many
// were sent. Requests that left New are forgotten, so one moved back to New from OnHold
// is reminded again.
func (j *RequestReminderJob) Run(ctx context.Context) int {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	query, err := queries.NewListRequestsQuery(ports.RequestFilter{
		Statuses:      []request.Status{request.New},
		CreatedBefore: now.Add(-j.after),
	})
	if err != nil {
		j.logger.ErrorContext(ctx, "Request reminder query is invalid", "error", err)
		return 0
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Request reminder job failed", "error", err)
		return 0
	}

	stillOverdue := make(map[uuid.UUID]struct{}, len(overdue))
	sent := 0
	for _, r := range overdue {
		id := r.ID().Bytes()
		stillOverdue[id] = struct{}{}
		if _, done := j.reminded[id]; done {
			continue
		}
		j.reminder.RequestReminder(ctx, r, now.Sub(r.CreatedAt()))
		sent++
	}
	j.reminded = stillOverdue
	return sent
}

// Stop waits for a running reminder pass to finish.
func (j *RequestReminderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Request reminder job stopped")
}
