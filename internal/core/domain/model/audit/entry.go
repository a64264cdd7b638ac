// Package audit holds the append-only trail of committed status changes.
package audit

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Subject names the kind of entity an Entry refers to.
type Subject string

const (
	SubjectRequest   Subject = "request"
	SubjectOrder     Subject = "order"
	SubjectOrderItem Subject = "order_item"
)

// Validate rejects subjects other than request, order and order item.
func (s Subject) Validate() error {
	switch s {
	case SubjectRequest, SubjectOrder, SubjectOrderItem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("subject", fmt.Errorf("%q is not an audit subject", string(s)))
	}
}

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry records one committed status change. SubjectID is a lookup reference only;
// for order items it is the item id and ParentID carries the order id.
type Entry struct {
	id        kernel.UUID
	subject   Subject
	subjectID kernel.UUID
	parentID  *kernel.UUID
	role      kernel.Role
	from      string
	to        string
	createdAt time.Time

	isConstructed bool
}

// NewEntry builds an entry for a change from -> to performed by role.
func NewEntry(
	id kernel.UUID,
	subject Subject,
	subjectID kernel.UUID,
	parentID *kernel.UUID,
	role kernel.Role,
	from, to string,
	createdAt time.Time,
) (*Entry, error) {
	var parentErr error
	if parentID != nil {
		parentErr = parentID.Validate()
	}

	if err := errors.Join(
		id.Validate(),
		subject.Validate(),
		subjectID.Validate(),
		parentErr,
		requireStatus("from status", from),
		requireStatus("to status", to),
	); err != nil {
		return nil, err
	}

	return &Entry{
		id:            id,
		subject:       subject,
		subjectID:     subjectID,
		parentID:      parentID,
		role:          role,
		from:          from,
		to:            to,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func requireStatus(name, status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}

// Validate reports whether the entry was built by NewEntry or RestoreEntry.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// Subject returns the kind of entity that changed.
func (e *Entry) Subject() Subject { return e.subject }

// SubjectID returns the id of the entity that changed.
func (e *Entry) SubjectID() kernel.UUID { return e.subjectID }

// Role returns the role that made the change.
func (e *Entry) Role() kernel.Role { return e.role }

// From returns the status before the change.
func (e *Entry) From() string { return e.from }

// To returns the status after the change.
func (e *Entry) To() string { return e.to }

// CreatedAt returns when the change was applied.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// ParentID is the owning order of an order item entry, nil otherwise.
func (e *Entry) ParentID() *kernel.UUID {
	if e.parentID == nil {
		return nil
	}
	id := *e.parentID
	return &id
}

// Action renders the change as "<role> changed <from> → <to>".
func (e *Entry) Action() string {
	return fmt.Sprintf("%s changed %s → %s", e.role, e.from, e.to)
}
