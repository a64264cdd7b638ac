package commands

import (
	"context"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// OrderTransition is the committed outcome of an order status change.
type OrderTransition struct {
	Order    *order.Order
	Previous order.Status
	Entry    *audit.Entry
}

// Changed reports whether the status moved and an audit entry was written.
func (t OrderTransition) Changed() bool {
	return t.Entry != nil
}

type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitionEngine
}

// NewUpdateOrderStatusCommandHandler creates the handler.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, engine services.StatusTransitionEngine) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle loads the order under a row lock, applies the transition and appends the audit
// entry when the status changed. A same-status call commits nothing.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (OrderTransition, error) {
	if err := cmd.Validate(); err != nil {
		return OrderTransition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderTransition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return OrderTransition{}, err
	}
	previous := o.Status()

	entry, err := h.engine.ApplyOrderTransition(o, cmd.Status(), cmd.Role())
	if err != nil {
		observeRejection(audit.SubjectOrder, err)
		return OrderTransition{}, err
	}
	if entry == nil {
		return OrderTransition{Order: o, Previous: previous}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return OrderTransition{}, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return OrderTransition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderTransition{}, err
	}
	observeTransition(entry)

	return OrderTransition{Order: o, Previous: previous, Entry: entry}, nil
}
