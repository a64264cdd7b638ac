package request

import (
	"errors"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// ReadyToPayPhrase marks a request as the customer's call for the bill. At most one
// such request may be waiting per session.
const ReadyToPayPhrase = "ready to pay"

var (
	// ErrRequestIsNotConstructed is returned for Request values not built by NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")
)

// Request is a service request raised by a customer session at a table.
type Request struct {
	id          kernel.UUID
	ownerID     string
	tableNumber kernel.TableNumber
	content     string
	status      Status
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewRequest creates a request in New status.
func NewRequest(id kernel.UUID, ownerID string, tableNumber kernel.TableNumber, content string, now time.Time) (*Request, error) {
	r := &Request{
		status:        New,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setTableNumber(tableNumber),
		r.setContent(content),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRequest rebuilds a request read from storage, in any status.
func RestoreRequest(
	id kernel.UUID,
	ownerID string,
	tableNumber kernel.TableNumber,
	content string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Request, error) {
	r := &Request{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setTableNumber(tableNumber),
		r.setContent(content),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	r.status = status

	return r, nil
}

// Validate reports ErrRequestIsNotConstructed for a Request not built by a constructor.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

// ID returns the request identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// OwnerID returns the customer session that raised the request.
func (r *Request) OwnerID() string { return r.ownerID }

// TableNumber returns the table the request was raised at.
func (r *Request) TableNumber() kernel.TableNumber { return r.tableNumber }

// Content returns the free-text request.
func (r *Request) Content() string { return r.content }

// Status returns the current lifecycle status.
func (r *Request) Status() Status { return r.status }

// CreatedAt returns the creation time.
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns the time of the last status or content change.
func (r *Request) UpdatedAt() time.Time { return r.updatedAt }

// IsReadyToPay reports whether the content asks for the bill.
func (r *Request) IsReadyToPay() bool {
	return IsReadyToPayContent(r.content)
}

// ChangeStatus moves the request to status on behalf of role. It reports whether the
// status actually changed; a same-status call is a no-op.
func (r *Request) ChangeStatus(status Status, role kernel.Role, now time.Time) (bool, error) {
	if err := r.status.ValidateTransition(status, role); err != nil {
		return false, err
	}
	if status == r.status {
		return false, nil
	}

	r.status = status
	r.updatedAt = now
	return true, nil
}

// ValidateContentUpdate returns nil when role may replace the request text. Terminal
// requests are frozen, and roles without a transition table may not edit at all.
func (r *Request) ValidateContentUpdate(role kernel.Role) error {
	if r.status.IsTerminal() || !role.IsKnown() {
		return errs.NewInvalidTransitionError("request", r.status.String(), r.status.String(), role.String(),
			names(r.status.AllowedTransitions(role)))
	}
	return nil
}

// UpdateContent replaces the request text on behalf of role.
//
// Example:
//
//	err := r.UpdateContent("two glasses of water", kernel.RoleCustomer, time.Now())
func (r *Request) UpdateContent(content string, role kernel.Role, now time.Time) error {
	if err := r.ValidateContentUpdate(role); err != nil {
		return err
	}
	if err := r.setContent(content); err != nil {
		return err
	}
	r.updatedAt = now
	return nil
}

// IsReadyToPayContent matches ReadyToPayPhrase anywhere in content, ignoring case.
func IsReadyToPayContent(content string) bool {
	return strings.Contains(strings.ToLower(content), ReadyToPayPhrase)
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setOwnerID(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return errs.NewValueIsRequiredError("owner id")
	}
	r.ownerID = ownerID
	return nil
}

func (r *Request) setTableNumber(tableNumber kernel.TableNumber) error {
	if err := tableNumber.Validate(); err != nil {
		return err
	}
	r.tableNumber = tableNumber
	return nil
}

func (r *Request) setContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errs.NewValueIsRequiredError("content")
	}
	r.content = content
	return nil
}
