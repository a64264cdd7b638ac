package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrAddOrderItemCommandIsNotConstructed = errors.New(
	"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
)

// ItemDetails describes the line item to add.
type ItemDetails struct {
	Name                string
	UnitPrice           kernel.Money
	Quantity            int
	Options             []string
	Extras              []string
	SpecialInstructions string
}

// AddOrderItemCommand adds a line item to the session's running order, opening a new
// order for the table when the session has none.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	itemID      kernel.UUID
	sessionID   string
	tableNumber kernel.TableNumber
	item        ItemDetails

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand takes the id to use if a new order has to be opened, and the id
// of the new line item.
func NewAddOrderItemCommand(
	orderID, itemID kernel.UUID,
	sessionID string,
	tableNumber kernel.TableNumber,
	item ItemDetails,
) (AddOrderItemCommand, error) {
	var sessionErr error
	if strings.TrimSpace(sessionID) == "" {
		sessionErr = errs.NewValueIsRequiredError("session id")
	}
	var nameErr error
	if strings.TrimSpace(item.Name) == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	var quantityErr error
	if item.Quantity < 1 {
		quantityErr = errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, "unbounded")
	}

	if err := errors.Join(
		orderID.Validate(),
		itemID.Validate(),
		sessionErr,
		tableNumber.Validate(),
		nameErr,
		quantityErr,
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return AddOrderItemCommand{
		orderID:     orderID,
		itemID:      itemID,
		sessionID:   sessionID,
		tableNumber: tableNumber,
		item:        item,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the command was built by NewAddOrderItemCommand.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the id used when a new order has to be opened.
func (c AddOrderItemCommand) OrderID() kernel.UUID { return c.orderID }

// ItemID returns the id of the new item.
func (c AddOrderItemCommand) ItemID() kernel.UUID { return c.itemID }

// SessionID returns the customer session.
func (c AddOrderItemCommand) SessionID() string { return c.sessionID }

// TableNumber returns the table of a newly opened order.
func (c AddOrderItemCommand) TableNumber() kernel.TableNumber { return c.tableNumber }

// Item returns the item details.
func (c AddOrderItemCommand) Item() ItemDetails { return c.item }
