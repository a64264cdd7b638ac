package order

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Status is the aggregate state of an order.
//
// Staff (waiter, admin) transitions:
//
//	New          -> Acknowledged | InProgress | Cancelled
//	Acknowledged -> InProgress | Cancelled
//	InProgress   -> Complete | Cancelled
//	Complete     -> InProgress | Delivered
//	Delivered    -> InProgress | Paid
//
// Customer transitions:
//
//	New, Acknowledged -> Cancelled
//	Delivered         -> Rejected
//
// Paid, Cancelled and Rejected are terminal.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	New
	Acknowledged
	InProgress
	Complete
	Delivered
	Paid
	Cancelled
	Rejected
)

var statusNames = map[Status]string{
	New:          "New",
	Acknowledged: "Acknowledged",
	InProgress:   "InProgress",
	Complete:     "Complete",
	Delivered:    "Delivered",
	Paid:         "Paid",
	Cancelled:    "Cancelled",
	Rejected:     "Rejected",
}

var staffTransitions = map[Status][]Status{
	New:          {Acknowledged, InProgress, Cancelled},
	Acknowledged: {InProgress, Cancelled},
	InProgress:   {Complete, Cancelled},
	Complete:     {InProgress, Delivered},
	Delivered:    {InProgress, Paid},
}

var customerTransitions = map[Status][]Status{
	New:          {Cancelled},
	Acknowledged: {Cancelled},
	Delivered:    {Rejected},
}

var transitionTable = map[kernel.Role]map[Status][]Status{
	kernel.RoleCustomer: customerTransitions,
	kernel.RoleWaiter:   staffTransitions,
	kernel.RoleAdmin:    staffTransitions,
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{New, Acknowledged, InProgress, Complete, Delivered, Paid, Cancelled, Rejected}
}

// ParseStatus accepts the canonical names case-insensitively. "Completed" and
// "Canceled" are read as Complete and Cancelled.
func ParseStatus(s string) (Status, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	switch key {
	case "completed":
		return Complete, nil
	case "canceled":
		return Cancelled, nil
	}
	for status, name := range statusNames {
		if strings.ToLower(name) == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical status name, or "Unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal reports whether the order is closed for every role.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled || s == Rejected
}

// AllowedTransitions returns the statuses reachable from s in one step for role.
// Unrecognized roles get every other status unless s is terminal.
func (s Status) AllowedTransitions(role kernel.Role) []Status {
	if !role.IsKnown() {
		if s.IsTerminal() {
			return []Status{}
		}
		out := make([]Status, 0, len(statusNames)-1)
		for _, candidate := range Statuses() {
			if candidate != s {
				out = append(out, candidate)
			}
		}
		return out
	}

	next := transitionTable[role][s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether role may move an order from s to to.
func (s Status) CanTransitionTo(to Status, role kernel.Role) bool {
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

// ValidateTransition returns an InvalidTransitionError carrying the allowed targets
// when role may not move an order from s to to.
func (s Status) ValidateTransition(to Status, role kernel.Role) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if s.CanTransitionTo(to, role) {
		return nil
	}
	return errs.NewInvalidTransitionError("order", s.String(), to.String(), role.String(), names(s.AllowedTransitions(role)))
}

func names[T fmt.Stringer](statuses []T) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
