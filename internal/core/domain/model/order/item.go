package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an order line. Options and extras are the menu selections made by the
// customer; they are kept as display names.
type Item struct {
	id                  kernel.UUID
	name                string
	unitPrice           kernel.Money
	quantity            int
	options             []string
	extras              []string
	specialInstructions string
	status              ItemStatus
	updatedAt           time.Time

	isConstructed bool
}

// NewItem creates a line item in ItemNew status.
func NewItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	options, extras []string,
	specialInstructions string,
	now time.Time,
) (*Item, error) {
	return RestoreItem(id, name, unitPrice, quantity, options, extras, specialInstructions, ItemNew, now)
}

// RestoreItem rebuilds a line item read from storage.
func RestoreItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantity int,
	options, extras []string,
	specialInstructions string,
	status ItemStatus,
	updatedAt time.Time,
) (*Item, error) {
	item := &Item{
		unitPrice:           unitPrice,
		options:             append([]string(nil), options...),
		extras:              append([]string(nil), extras...),
		specialInstructions: strings.TrimSpace(specialInstructions),
		updatedAt:           updatedAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	item.status = status

	return item, nil
}

// Validate reports whether the item was built by NewItem or RestoreItem.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// Name returns the menu item name.
func (i *Item) Name() string { return i.name }

// UnitPrice returns the price of one unit.
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int { return i.quantity }

// Options returns a copy of the chosen options.
func (i *Item) Options() []string { return append([]string(nil), i.options...) }

// Extras returns a copy of the chosen extras.
func (i *Item) Extras() []string { return append([]string(nil), i.extras...) }

// SpecialInstructions returns the customer note for the kitchen.
func (i *Item) SpecialInstructions() string { return i.specialInstructions }

// Status returns the item status.
func (i *Item) Status() ItemStatus { return i.status }

// UpdatedAt returns the time of the last item change.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// IsEqual compares items by identity.
func (i *Item) IsEqual(other *Item) bool { return other != nil && i.id.IsEqual(other.id) }

// Subtotal is unit price times quantity, regardless of status.
func (i *Item) Subtotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

func (i *Item) changeStatus(status ItemStatus, role kernel.Role, now time.Time) (bool, error) {
	if err := i.status.ValidateTransition(status, role); err != nil {
		return false, err
	}
	if status == i.status {
		return false, nil
	}
	i.status = status
	i.updatedAt = now
	return true, nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
