package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/application/notifications"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

type recorder struct {
	mu   sync.Mutex
	sent []ports.Notification
}

func (r *recorder) Notify(_ context.Context, n ports.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recorder) channels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sent))
	for _, n := range r.sent {
		out = append(out, n.Channel)
	}
	return out
}

type failing struct{}

func (failing) Notify(context.Context, ports.Notification) error {
	return errors.New("broker down")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(t *testing.T, table int) *request.Request {
	t.Helper()
	tn, err := kernel.NewTableNumber(table)
	require.NoError(t, err)
	r, err := request.NewRequest(kernel.NewUUID(), "s-1", tn, "ketchup please", t0)
	require.NoError(t, err)
	return r
}

func TestDispatcher_UnallocatedTableGoesToStaff(t *testing.T) {
	rec := &recorder{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	d := notifications.NewDispatcher(factory, discardLogger(), notifications.Sink{Name: "test", Notifier: rec})

	d.RequestCreated(context.Background(), newRequest(t, 3))

	assert.Equal(t, []string{"session:s-1", notifications.StaffChannel}, rec.channels())
	assert.Equal(t, notifications.EventRequestCreated, rec.sent[0].EventType)
	assert.Equal(t, "ketchup please", rec.sent[0].Message)
	assert.True(t, rec.sent[0].RequiresRefresh)
}

func TestDispatcher_AllocatedTableGoesToWaiter(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	tn, _ := kernel.NewTableNumber(3)
	alloc, err := allocation.NewTableAllocation(tn, "w-7", t0)
	require.NoError(t, err)
	require.NoError(t, factory.Create().TableAllocationRepository().Save(ctx, alloc))

	d := notifications.NewDispatcher(factory, discardLogger(), notifications.Sink{Name: "test", Notifier: rec})
	d.RequestReminder(ctx, newRequest(t, 3), 5*time.Minute)

	assert.Equal(t, []string{"waiter:w-7"}, rec.channels())
	assert.Equal(t, notifications.EventRequestReminder, rec.sent[0].EventType)
}

func TestDispatcher_SkipsNoOpTransitions(t *testing.T) {
	rec := &recorder{}
	d := notifications.NewDispatcher(memory.NewUnitOfWorkFactory(memory.NewStore()), discardLogger(),
		notifications.Sink{Name: "test", Notifier: rec})

	r := newRequest(t, 3)
	d.RequestStatusChanged(context.Background(), commands.RequestTransition{Request: r, Previous: request.New})

	assert.Empty(t, rec.channels())
}

func TestDispatcher_StatusChangeCarriesAction(t *testing.T) {
	rec := &recorder{}
	d := notifications.NewDispatcher(memory.NewUnitOfWorkFactory(memory.NewStore()), discardLogger(),
		notifications.Sink{Name: "test", Notifier: rec})

	r := newRequest(t, 3)
	_, err := r.ChangeStatus(request.Acknowledged, kernel.RoleWaiter, t0)
	require.NoError(t, err)
	entry, err := audit.NewEntry(kernel.NewUUID(), audit.SubjectRequest, r.ID(), nil,
		kernel.RoleWaiter, "New", "Acknowledged", t0)
	require.NoError(t, err)

	d.RequestStatusChanged(context.Background(), commands.RequestTransition{Request: r, Previous: request.New, Entry: entry})

	require.Len(t, rec.sent, 2)
	assert.Equal(t, "waiter changed New → Acknowledged", rec.sent[0].Message)
	assert.Equal(t, "New", rec.sent[0].Metadata["previousStatus"])
	assert.Equal(t, "Acknowledged", rec.sent[0].Metadata["status"])
}

func TestDispatcher_SinkFailureIsCountedNotPropagated(t *testing.T) {
	rec := &recorder{}
	d := notifications.NewDispatcher(memory.NewUnitOfWorkFactory(memory.NewStore()), discardLogger(),
		notifications.Sink{Name: "dispatcher-test-broken", Notifier: failing{}},
		notifications.Sink{Name: "test", Notifier: rec},
	)
	before := testutil.ToFloat64(metrics.NotificationsDroppedTotal.WithLabelValues("dispatcher-test-broken"))

	d.RequestCreated(context.Background(), newRequest(t, 3))

	after := testutil.ToFloat64(metrics.NotificationsDroppedTotal.WithLabelValues("dispatcher-test-broken"))
	assert.InDelta(t, 2, after-before, 0)
	assert.Len(t, rec.channels(), 2)
}
