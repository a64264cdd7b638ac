package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/pkg/errs"
)

// OrderChange is the committed outcome of AddOrderItemCommand.
type OrderChange struct {
	Order   *order.Order
	Item    *order.Item
	Created bool
}

// AddOrderItemCommandHandler appends to the session's active order or creates a New order
// holding the first item.
type AddOrderItemCommandHandler struct {
	uowFactory OrderUoWFactory
	engine     services.StatusTransitionEngine
}

// NewAddOrderItemCommandHandler creates the handler.
func NewAddOrderItemCommandHandler(uowFactory OrderUoWFactory, engine services.StatusTransitionEngine) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle adds the item to the locked active order of the session, or opens one.
func (h AddOrderItemCommandHandler) Handle(ctx context.Context, cmd AddOrderItemCommand) (OrderChange, error) {
	if err := cmd.Validate(); err != nil {
		return OrderChange{}, err
	}

	now := h.engine.Now()
	details := cmd.Item()
	item, err := order.NewItem(
		cmd.ItemID(),
		details.Name,
		details.UnitPrice,
		details.Quantity,
		details.Options,
		details.Extras,
		details.SpecialInstructions,
		now,
	)
	if err != nil {
		return OrderChange{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return OrderChange{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	current, err := orderRepo.GetActiveBySession(ctx, cmd.SessionID())
	created := errors.Is(err, errs.ErrObjectNotFound)
	if err != nil && !created {
		return OrderChange{}, err
	}

	if created {
		current, err = order.NewOrder(cmd.OrderID(), cmd.TableNumber(), cmd.SessionID(), now)
		if err != nil {
			return OrderChange{}, err
		}
	}

	if err = current.AddItem(item, now); err != nil {
		return OrderChange{}, err
	}

	if created {
		err = orderRepo.Add(ctx, current)
	} else {
		err = orderRepo.Update(ctx, current)
	}
	if err != nil {
		return OrderChange{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderChange{}, err
	}

	return OrderChange{Order: current, Item: item, Created: created}, nil
}
