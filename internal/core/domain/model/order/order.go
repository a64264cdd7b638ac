package order

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for Order values not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the running order of one table session. It is the aggregate root for its
// line items: items are only added and moved through the order.
//
// Order follows these invariants:
//   - Must have a valid identifier, table number and session id
//   - Status changes follow the role-aware transition table in Status
//   - A terminal order accepts no new items and no item status changes
type Order struct {
	id          kernel.UUID
	tableNumber kernel.TableNumber
	sessionID   string
	items       []*Item
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewOrder creates an empty order in New status. Orders are normally created together
// with their first item, see AddItem.
func NewOrder(id kernel.UUID, tableNumber kernel.TableNumber, sessionID string, now time.Time) (*Order, error) {
	return RestoreOrder(id, tableNumber, sessionID, New, nil, now, now)
}

// RestoreOrder rebuilds an order and its items read from storage.
func RestoreOrder(
	id kernel.UUID,
	tableNumber kernel.TableNumber,
	sessionID string,
	status Status,
	items []*Item,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	itemErrs := make([]error, 0, len(items))
	for _, item := range items {
		itemErrs = append(itemErrs, item.Validate())
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		o.setSessionID(sessionID),
		status.Validate(),
		errors.Join(itemErrs...),
	); err != nil {
		return nil, err
	}
	o.status = status
	o.items = append([]*Item(nil), items...)

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TableNumber returns the table the order is served at.
func (o *Order) TableNumber() kernel.TableNumber {
	return o.tableNumber
}

// SessionID returns the customer session that owns the order.
func (o *Order) SessionID() string {
	return o.sessionID
}

// Status returns the order status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the first item opened the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last order or item change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Items returns the line items in the order they were added.
func (o *Order) Items() []*Item {
	return append([]*Item(nil), o.items...)
}

// Item returns the line item with the given id or an ObjectNotFoundError.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order item", itemID.String())
}

// Total sums price times quantity over items that are not cancelled.
func (o *Order) Total() kernel.Money {
	total := kernel.Zero
	for _, item := range o.items {
		if item.Status() == ItemCancelled {
			continue
		}
		total = total.Add(item.Subtotal())
	}
	return total
}

// AddItem appends a line item. Terminal orders are closed for new items.
func (o *Order) AddItem(item *Item, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewConflictError("order", "order is "+o.status.String()+" and accepts no new items")
	}
	if _, err := o.Item(item.ID()); err == nil {
		return errs.NewConflictError("order item", "item "+item.ID().String()+" is already on the order")
	}

	o.items = append(o.items, item)
	o.updatedAt = now
	return nil
}

// ChangeStatus moves the order to status on behalf of role and reports whether the
// status changed.
func (o *Order) ChangeStatus(status Status, role kernel.Role, now time.Time) (bool, error) {
	if err := o.status.ValidateTransition(status, role); err != nil {
		return false, err
	}
	if status == o.status {
		return false, nil
	}

	o.status = status
	o.updatedAt = now
	return true, nil
}

// ChangeItemStatus moves one line item and reports whether its status changed.
func (o *Order) ChangeItemStatus(itemID kernel.UUID, status ItemStatus, role kernel.Role, now time.Time) (bool, error) {
	item, err := o.Item(itemID)
	if err != nil {
		return false, err
	}
	if o.status.IsTerminal() && status != item.Status() {
		return false, errs.NewConflictError("order", "order is "+o.status.String()+" and its items are closed")
	}

	changed, err := item.changeStatus(status, role, now)
	if err != nil || !changed {
		return false, err
	}
	o.updatedAt = now
	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableNumber(tableNumber kernel.TableNumber) error {
	if err := tableNumber.Validate(); err != nil {
		return err
	}
	o.tableNumber = tableNumber
	return nil
}

func (o *Order) setSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errs.NewValueIsRequiredError("session id")
	}
	o.sessionID = sessionID
	return nil
}
