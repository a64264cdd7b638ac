package services

import (
	"time"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/pkg/errs"
)

// Clock returns the current time. Tests pass a fixed clock.
type Clock func() time.Time

// StatusTransitionEngine applies status changes to loaded aggregates. Every Apply method
// either leaves the aggregate untouched and returns an error, or mutates it and returns
// the audit entry to append in the same transaction. A nil entry means nothing changed
// and nothing must be appended.
//
// Example usage:
//
//	engine := services.NewStatusTransitionEngine(time.Now)
//	entry, err := engine.ApplyRequestTransition(req, request.InProgress, kernel.RoleWaiter, nil)
//	if err != nil {
//	    return err
//	}
//	if entry != nil {
//	    err = auditRepo.Append(ctx, entry)
//	}
type StatusTransitionEngine struct {
	now Clock
}

// NewStatusTransitionEngine creates an engine. A nil clock means time.Now in UTC.
func NewStatusTransitionEngine(clock Clock) StatusTransitionEngine {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return StatusTransitionEngine{now: clock}
}

// Now is the engine clock, used by callers that create aggregates next to a transition.
func (e StatusTransitionEngine) Now() time.Time {
	return e.now()
}

// ValidateRequestTransition checks the request transition table for role without
// touching any aggregate. A same-status move is always valid.
func (e StatusTransitionEngine) ValidateRequestTransition(current, requested request.Status, role kernel.Role) error {
	return current.ValidateTransition(requested, role)
}

// ValidateOrderTransition checks the order transition table for role.
func (e StatusTransitionEngine) ValidateOrderTransition(current, requested order.Status, role kernel.Role) error {
	return current.ValidateTransition(requested, role)
}

// ValidateOrderItemTransition checks the item transition table for role.
func (e StatusTransitionEngine) ValidateOrderItemTransition(current, requested order.ItemStatus, role kernel.Role) error {
	return current.ValidateTransition(requested, role)
}

// ApplyRequestTransition moves r to status. When content is not nil it replaces the
// request text in the same change; a content-only update produces no audit entry.
// Content of a terminal request never changes, and only known roles may supply it.
func (e StatusTransitionEngine) ApplyRequestTransition(
	r *request.Request,
	status request.Status,
	role kernel.Role,
	content *string,
) (*audit.Entry, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := e.ValidateRequestTransition(r.Status(), status, role); err != nil {
		return nil, err
	}

	now := e.now()
	if content != nil {
		if err := r.UpdateContent(*content, role, now); err != nil {
			return nil, err
		}
	}

	from := r.Status()
	changed, err := r.ChangeStatus(status, role, now)
	if err != nil || !changed {
		return nil, err
	}

	return audit.NewEntry(kernel.NewUUID(), audit.SubjectRequest, r.ID(), nil, role, from.String(), status.String(), now)
}

// ApplyOrderTransition moves o to status.
func (e StatusTransitionEngine) ApplyOrderTransition(o *order.Order, status order.Status, role kernel.Role) (*audit.Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	from := o.Status()
	now := e.now()
	changed, err := o.ChangeStatus(status, role, now)
	if err != nil || !changed {
		return nil, err
	}

	return audit.NewEntry(kernel.NewUUID(), audit.SubjectOrder, o.ID(), nil, role, from.String(), status.String(), now)
}

// ApplyOrderItemTransition moves one item of o. The returned entry references the item
// and carries the order as its parent.
func (e StatusTransitionEngine) ApplyOrderItemTransition(
	o *order.Order,
	itemID kernel.UUID,
	status order.ItemStatus,
	role kernel.Role,
) (*order.Item, *audit.Entry, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	item, err := o.Item(itemID)
	if err != nil {
		return nil, nil, err
	}

	from := item.Status()
	now := e.now()
	changed, err := o.ChangeItemStatus(itemID, status, role, now)
	if err != nil {
		return nil, nil, err
	}
	if !changed {
		return item, nil, nil
	}

	orderID := o.ID()
	entry, err := audit.NewEntry(kernel.NewUUID(), audit.SubjectOrderItem, itemID, &orderID, role, from.String(), status.String(), now)
	if err != nil {
		return nil, nil, err
	}
	return item, entry, nil
}

// GuardReadyToPay rejects a new "ready to pay" request when the owner already has one
// waiting. existing are the owner's requests; only New and OnHold ones count.
func (e StatusTransitionEngine) GuardReadyToPay(ownerID, content string, existing []*request.Request) error {
	if !request.IsReadyToPayContent(content) {
		return nil
	}
	for _, r := range existing {
		if r.OwnerID() != ownerID || !r.Status().IsActive() || !r.IsReadyToPay() {
			continue
		}
		return errs.NewConflictError("request",
			"a \"ready to pay\" request "+r.ID().String()+" is already "+r.Status().String()+" for this session")
	}
	return nil
}
