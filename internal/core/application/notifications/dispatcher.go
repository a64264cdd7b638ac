// Package notifications turns committed changes into notifications for the owning
// session and the waiter serving the table. It runs after a unit of work commits and
// never fails the operation that triggered it.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/metrics"
	"restaurant/internal/pkg/errs"
)

const (
	EventRequestCreated         = "request_created"
	EventRequestStatusChanged   = "request_status_changed"
	EventRequestReminder        = "request_reminder"
	EventOrderItemAdded         = "order_item_added"
	EventOrderStatusChanged     = "order_status_changed"
	EventOrderItemStatusChanged = "order_item_status_changed"

	// StaffChannel receives table notifications while no waiter is allocated.
	StaffChannel = "staff"
)

// SessionChannel names the stream of one customer session.
func SessionChannel(sessionID string) string {
	return "session:" + sessionID
}

// WaiterChannel names the stream of one waiter.
func WaiterChannel(waiterID string) string {
	return "waiter:" + waiterID
}

// Sink is a named Notifier, the name labels dropped-notification metrics.
type Sink struct {
	Name     string
	Notifier ports.Notifier
}

type Dispatcher struct {
	uowFactory ports.UnitOfWorkFactory
	sinks      []Sink
	logger     *slog.Logger
}

// NewDispatcher creates a dispatcher fanning out to sinks. uowFactory is used to look
// up table allocations.
func NewDispatcher(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		uowFactory: uowFactory,
		sinks:      sinks,
		logger:     logger.With("component", "NotificationDispatcher"),
	}
}

// RequestCreated announces a new request to its session and the table's staff.
func (d *Dispatcher) RequestCreated(ctx context.Context, r *request.Request) {
	d.toTable(ctx, r.OwnerID(), r.TableNumber(), ports.Notification{
		EventType:       EventRequestCreated,
		Title:           fmt.Sprintf("Table %d", r.TableNumber()),
		Message:         r.Content(),
		Metadata:        requestMetadata(r),
		RequiresRefresh: true,
	})
}

// RequestStatusChanged announces a committed request transition. No-op transitions
// are not announced.
func (d *Dispatcher) RequestStatusChanged(ctx context.Context, t commands.RequestTransition) {
	if !t.Changed() {
		return
	}
	metadata := requestMetadata(t.Request)
	metadata["previousStatus"] = t.Previous.String()
	metadata["actor"] = t.Entry.Role().String()

	d.toTable(ctx, t.Request.OwnerID(), t.Request.TableNumber(), ports.Notification{
		EventType:       EventRequestStatusChanged,
		Title:           fmt.Sprintf("Request is %s", t.Request.Status()),
		Message:         t.Entry.Action(),
		Metadata:        metadata,
		RequiresRefresh: true,
	})
}

// RequestReminder goes to staff only; the customer already knows they are waiting.
func (d *Dispatcher) RequestReminder(ctx context.Context, r *request.Request, waiting time.Duration) {
	d.fanOut(ctx, d.staffChannel(ctx, r.TableNumber()), ports.Notification{
		EventType: EventRequestReminder,
		Title:     fmt.Sprintf("Table %d is waiting", r.TableNumber()),
		Message:   fmt.Sprintf("%q has been New for %s", r.Content(), waiting.Round(time.Second)),
		Metadata:  requestMetadata(r),
	})
}

// OrderItemAdded announces a new item, or a new order for the first item.
func (d *Dispatcher) OrderItemAdded(ctx context.Context, c commands.OrderChange) {
	o := c.Order
	d.toTable(ctx, o.SessionID(), o.TableNumber(), ports.Notification{
		EventType: EventOrderItemAdded,
		Title:     fmt.Sprintf("Table %d ordered", o.TableNumber()),
		Message:   fmt.Sprintf("%d x %s", c.Item.Quantity(), c.Item.Name()),
		Metadata: map[string]string{
			"orderId": o.ID().String(),
			"itemId":  c.Item.ID().String(),
			"total":   o.Total().String(),
			"created": strconv.FormatBool(c.Created),
		},
		RequiresRefresh: true,
	})
}

// OrderStatusChanged announces a committed order transition.
func (d *Dispatcher) OrderStatusChanged(ctx context.Context, t commands.OrderTransition) {
	if !t.Changed() {
		return
	}
	o := t.Order
	d.toTable(ctx, o.SessionID(), o.TableNumber(), ports.Notification{
		EventType: EventOrderStatusChanged,
		Title:     fmt.Sprintf("Order is %s", o.Status()),
		Message:   t.Entry.Action(),
		Metadata: map[string]string{
			"orderId":        o.ID().String(),
			"status":         o.Status().String(),
			"previousStatus": t.Previous.String(),
			"tableNumber":    strconv.Itoa(o.TableNumber().Int()),
		},
		RequiresRefresh: true,
	})
}

// OrderItemStatusChanged announces a committed item transition.
func (d *Dispatcher) OrderItemStatusChanged(ctx context.Context, t commands.OrderItemTransition) {
	if !t.Changed() {
		return
	}
	o := t.Order
	d.toTable(ctx, o.SessionID(), o.TableNumber(), ports.Notification{
		EventType: EventOrderItemStatusChanged,
		Title:     fmt.Sprintf("%s is %s", t.Item.Name(), t.Item.Status()),
		Message:   t.Entry.Action(),
		Metadata: map[string]string{
			"orderId":        o.ID().String(),
			"itemId":         t.Item.ID().String(),
			"status":         t.Item.Status().String(),
			"previousStatus": t.Previous.String(),
		},
		RequiresRefresh: true,
	})
}

func (d *Dispatcher) toTable(ctx context.Context, sessionID string, table kernel.TableNumber, n ports.Notification) {
	d.fanOut(ctx, SessionChannel(sessionID), n)
	d.fanOut(ctx, d.staffChannel(ctx, table), n)
}

// staffChannel resolves the waiter allocated to the table, falling back to StaffChannel.
func (d *Dispatcher) staffChannel(ctx context.Context, table kernel.TableNumber) string {
	a, err := d.uowFactory.Create().TableAllocationRepository().Get(ctx, table)
	if err == nil {
		return WaiterChannel(a.WaiterID())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		d.logger.WarnContext(ctx, "table allocation lookup failed", "table", table.Int(), "error", err)
	}
	return StaffChannel
}

func (d *Dispatcher) fanOut(ctx context.Context, channel string, n ports.Notification) {
	n.Channel = channel
	for _, sink := range d.sinks {
		if err := sink.Notifier.Notify(ctx, n); err != nil {
			metrics.NotificationsDroppedTotal.WithLabelValues(sink.Name).Inc()
			d.logger.WarnContext(ctx, "notification dropped",
				"sink", sink.Name, "channel", channel, "event", n.EventType, "error", err)
		}
	}
}

func requestMetadata(r *request.Request) map[string]string {
	return map[string]string{
		"requestId":   r.ID().String(),
		"status":      r.Status().String(),
		"tableNumber": strconv.Itoa(r.TableNumber().Int()),
	}
}
