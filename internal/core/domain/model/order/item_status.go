package order

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// ItemStatus tracks a single line item through the kitchen.
//
//	New        -> InProgress | Cancelled   (staff)
//	InProgress -> Delivered | Cancelled    (staff)
//	New        -> Cancelled                (customer)
type ItemStatus int

const (
	ItemUnknown ItemStatus = iota
	ItemNew
	ItemInProgress
	ItemDelivered
	ItemCancelled
)

var itemStatusNames = map[ItemStatus]string{
	ItemNew:        "New",
	ItemInProgress: "InProgress",
	ItemDelivered:  "Delivered",
	ItemCancelled:  "Cancelled",
}

var staffItemTransitions = map[ItemStatus][]ItemStatus{
	ItemNew:        {ItemInProgress, ItemCancelled},
	ItemInProgress: {ItemDelivered, ItemCancelled},
}

var itemTransitionTable = map[kernel.Role]map[ItemStatus][]ItemStatus{
	kernel.RoleCustomer: {ItemNew: {ItemCancelled}},
	kernel.RoleWaiter:   staffItemTransitions,
	kernel.RoleAdmin:    staffItemTransitions,
}

// ItemStatuses returns every valid item status in lifecycle order.
func ItemStatuses() []ItemStatus {
	return []ItemStatus{ItemNew, ItemInProgress, ItemDelivered, ItemCancelled}
}

// ParseItemStatus accepts the canonical names case-insensitively; "Complete" and
// "Completed" are read as Delivered.
func ParseItemStatus(s string) (ItemStatus, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch key {
	case "complete", "completed":
		return ItemDelivered, nil
	case "canceled":
		return ItemCancelled, nil
	}
	for status, name := range itemStatusNames {
		if strings.ToLower(name) == key {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause("item status", fmt.Errorf("%q is not an item status", s))
}

// Validate rejects unknown item statuses.
func (s ItemStatus) Validate() error {
	if _, ok := itemStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status is invalid", fmt.Errorf("%d is not a valid item status", s))
	}
	return nil
}

// String returns the canonical item status name.
func (s ItemStatus) String() string {
	if name, ok := itemStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether the item can no longer change.
func (s ItemStatus) IsTerminal() bool {
	return s == ItemDelivered || s == ItemCancelled
}

// AllowedTransitions follows the order policy for unrecognized roles.
func (s ItemStatus) AllowedTransitions(role kernel.Role) []ItemStatus {
	if !role.IsKnown() {
		if s.IsTerminal() {
			return []ItemStatus{}
		}
		out := make([]ItemStatus, 0, len(itemStatusNames)-1)
		for _, candidate := range ItemStatuses() {
			if candidate != s {
				out = append(out, candidate)
			}
		}
		return out
	}

	next := itemTransitionTable[role][s]
	out := make([]ItemStatus, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether role may move an item from s to to.
func (s ItemStatus) CanTransitionTo(to ItemStatus, role kernel.Role) bool {
	if s == to {
		return true
	}
	for _, allowed := range s.AllowedTransitions(role) {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError listing the allowed targets when
// role may not move an item from s to to.
func (s ItemStatus) ValidateTransition(to ItemStatus, role kernel.Role) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if s.CanTransitionTo(to, role) {
		return nil
	}
	return errs.NewInvalidTransitionError("order item", s.String(), to.String(), role.String(), names(s.AllowedTransitions(role)))
}
