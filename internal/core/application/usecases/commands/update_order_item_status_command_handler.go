package commands

import (
	"context"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// OrderItemTransition is the committed outcome of an item status change.
type OrderItemTransition struct {
	Order    *order.Order
	Item     *order.Item
	Previous order.ItemStatus
	Entry    *audit.Entry
}

// Changed reports whether the item status moved and an audit entry was written.
func (t OrderItemTransition) Changed() bool {
	return t.Entry != nil
}

type UpdateOrderItemStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitionEngine
}

// NewUpdateOrderItemStatusCommandHandler creates the handler.
func NewUpdateOrderItemStatusCommandHandler(
	uowFactory OrderUoWFactory,
	engine services.StatusTransitionEngine,
) UpdateOrderItemStatusCommandHandler {
	return UpdateOrderItemStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle locks the order, applies the item transition and appends the audit entry in
// one unit of work.
func (h UpdateOrderItemStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderItemStatusCommand,
) (OrderItemTransition, error) {
	if err := cmd.Validate(); err != nil {
		return OrderItemTransition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderItemTransition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return OrderItemTransition{}, err
	}
	current, err := o.Item(cmd.ItemID())
	if err != nil {
		return OrderItemTransition{}, err
	}
	previous := current.Status()

	item, entry, err := h.engine.ApplyOrderItemTransition(o, cmd.ItemID(), cmd.Status(), cmd.Role())
	if err != nil {
		observeRejection(audit.SubjectOrderItem, err)
		return OrderItemTransition{}, err
	}
	if entry == nil {
		return OrderItemTransition{Order: o, Item: item, Previous: previous}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return OrderItemTransition{}, err
	}

	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
		return OrderItemTransition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderItemTransition{}, err
	}
	observeTransition(entry)

	return OrderItemTransition{Order: o, Item: item, Previous: previous, Entry: entry}, nil
}
