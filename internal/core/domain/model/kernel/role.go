package kernel

import "strings"

// Role is the privilege class of the actor performing an action. Values outside the
// known set are kept as-is so that policy code can decide how to treat them.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleWaiter   Role = "waiter"
	RoleAdmin    Role = "admin"
)

// ParseRole normalizes a role coming from the transport layer. "session" and "client"
// are the customer-facing names used by the ordering flows.
func ParseRole(s string) Role {
	switch r := strings.ToLower(strings.TrimSpace(s)); r {
	case "customer", "session", "client":
		return RoleCustomer
	case "waiter":
		return RoleWaiter
	case "admin":
		return RoleAdmin
	default:
		return Role(r)
	}
}

// IsKnown reports whether the role is one of customer, waiter or admin.
func (r Role) IsKnown() bool {
	return r == RoleCustomer || r == RoleWaiter || r == RoleAdmin
}

// IsStaff reports whether the role belongs to restaurant staff.
func (r Role) IsStaff() bool {
	return r == RoleWaiter || r == RoleAdmin
}

// String returns the role name, or "unknown" for an empty role.
func (r Role) String() string {
	if r == "" {
		return "unknown"
	}
	return string(r)
}
