package request

import (
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Status is the lifecycle state of a Request.
//
// Staff transitions:
//
//	New          -> Acknowledged | InProgress | OnHold | Cancelled
//	Acknowledged -> InProgress | OnHold | Cancelled
//	InProgress   -> Completed | Done | Cancelled
//	OnHold       -> New | Cancelled
//
// Customers may only move New, Acknowledged and OnHold requests to Cancelled.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	New
	Acknowledged
	InProgress
	OnHold
	Completed
	Done
	Cancelled
)

var statusNames = map[Status]string{
	New:          "New",
	Acknowledged: "Acknowledged",
	InProgress:   "InProgress",
	OnHold:       "OnHold",
	Completed:    "Completed",
	Done:         "Done",
	Cancelled:    "Cancelled",
}

var staffTransitions = map[Status][]Status{
	New:          {Acknowledged, InProgress, OnHold, Cancelled},
	Acknowledged: {InProgress, OnHold, Cancelled},
	InProgress:   {Completed, Cancelled, Done},
	OnHold:       {New, Cancelled},
}

var customerTransitions = map[Status][]Status{
	New:          {Cancelled},
	Acknowledged: {Cancelled},
	OnHold:       {Cancelled},
}

// transitionTable is keyed by role. Roles missing from the table, and statuses missing
// from a role's row, have no outgoing transitions.
var transitionTable = map[kernel.Role]map[Status][]Status{
	kernel.RoleCustomer: customerTransitions,
	kernel.RoleWaiter:   staffTransitions,
	kernel.RoleAdmin:    staffTransitions,
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{New, Acknowledged, InProgress, OnHold, Completed, Done, Cancelled}
}

// ParseStatus accepts the canonical names case-insensitively, ignoring spaces,
// dashes and underscores ("in_progress", "On Hold"). "Canceled" is accepted too.
func ParseStatus(s string) (Status, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(s))
	if key == "canceled" {
		return Cancelled, nil
	}
	for status, name := range statusNames {
		if strings.ToLower(name) == key {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a request status", s))
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

// IsTerminal reports whether no further transition is permitted for any role.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Done || s == Cancelled
}

// IsActive reports whether the request is still waiting for staff (New or OnHold).
func (s Status) IsActive() bool {
	return s == New || s == OnHold
}

// AllowedTransitions returns the statuses reachable from s in one step for role.
// The returned slice is a copy.
func (s Status) AllowedTransitions(role kernel.Role) []Status {
	next := transitionTable[role][s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransitionTo reports whether role may move a request from s to to.
func (s Status) CanTransitionTo(to Status, role kernel.Role) bool {
	if s == to {
		return true
	}
	for _, allowed := range transitionTable[role][s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns nil when the move is allowed, a ValueIsInvalidError when
// either status is not a valid value, or an InvalidTransitionError listing the allowed targets.
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

	return errs.NewInvalidTransitionError("request", s.String(), to.String(), role.String(), names(s.AllowedTransitions(role)))
}

func names(statuses []Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}
