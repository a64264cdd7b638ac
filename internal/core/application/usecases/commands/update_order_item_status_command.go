package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrUpdateOrderItemStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderItemStatusCommand must be created via NewUpdateOrderItemStatusCommand constructor",
)

type UpdateOrderItemStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	status  order.ItemStatus
	role    kernel.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderItemStatusCommand creates a command moving one item of an order.
func NewUpdateOrderItemStatusCommand(
	orderID, itemID string,
	status order.ItemStatus,
	role kernel.Role,
) (UpdateOrderItemStatusCommand, error) {
	oid, err := parseSubjectID("order", orderID)
	if err != nil {
		return UpdateOrderItemStatusCommand{}, err
	}
	iid, err := parseSubjectID("order item", itemID)
	if err != nil {
		return UpdateOrderItemStatusCommand{}, err
	}
	if err = status.Validate(); err != nil {
		return UpdateOrderItemStatusCommand{}, err
	}

	return UpdateOrderItemStatusCommand{
		orderID: oid,
		itemID:  iid,
		status:  status,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewUpdateOrderItemStatusCommand.
func (c UpdateOrderItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderItemStatusCommandIsNotConstructed)
}

// OrderID returns the order holding the item.
func (c UpdateOrderItemStatusCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the item to change.
func (c UpdateOrderItemStatusCommand) ItemID() kernel.UUID { return c.itemID }

// Status returns the requested item status.
func (c UpdateOrderItemStatusCommand) Status() order.ItemStatus { return c.status }

// Role returns the acting role.
func (c UpdateOrderItemStatusCommand) Role() kernel.Role { return c.role }
