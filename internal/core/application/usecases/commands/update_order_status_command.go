package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.Status
	role    kernel.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand reports an id that is not a UUID as not found.
func NewUpdateOrderStatusCommand(orderID string, status order.Status, role kernel.Role) (UpdateOrderStatusCommand, error) {
	id, err := parseSubjectID("order", orderID)
	if err != nil {
		return UpdateOrderStatusCommand{}, err
	}
	if err = status.Validate(); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: id,
		status:  status,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewUpdateOrderStatusCommand.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to change.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Status returns the requested status.
func (c UpdateOrderStatusCommand) Status() order.Status { return c.status }

// Role returns the acting role.
func (c UpdateOrderStatusCommand) Role() kernel.Role { return c.role }
