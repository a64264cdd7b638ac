package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetAuditLogQueryIsNotConstructed = errors.New(
	"GetAuditLogQuery must be created via NewGetAuditLogQuery constructor",
)

// GetAuditLogQuery returns the status history of a request or an order. An order's log
// includes the changes of its items.
type GetAuditLogQuery struct {
	subject   audit.Subject
	subjectID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAuditLogQuery creates a query for the log of one request or order.
func NewGetAuditLogQuery(subject audit.Subject, subjectID string) (GetAuditLogQuery, error) {
	if subject != audit.SubjectRequest && subject != audit.SubjectOrder {
		return GetAuditLogQuery{}, errs.NewValueIsInvalidError("audit log subject")
	}
	id, err := parseID(string(subject), subjectID)
	if err != nil {
		return GetAuditLogQuery{}, err
	}
	return GetAuditLogQuery{subject: subject, subjectID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetAuditLogQuery.
func (q GetAuditLogQuery) Validate() error {
	return q.guard.Validate(ErrGetAuditLogQueryIsNotConstructed)
}

type GetAuditLogQueryHandler struct {
	uowFactory UoWFactory
}

// NewGetAuditLogQueryHandler creates the handler.
func NewGetAuditLogQueryHandler(uowFactory UoWFactory) GetAuditLogQueryHandler {
	return GetAuditLogQueryHandler{uowFactory: uowFactory}
}

// Handle fails with an ObjectNotFoundError when the subject does not exist, so that an
// empty log always means "no changes yet".
func (h GetAuditLogQueryHandler) Handle(ctx context.Context, q GetAuditLogQuery) ([]*audit.Entry, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	var err error
	switch q.subject {
	case audit.SubjectOrder:
		_, err = uow.OrderRepository().Get(ctx, q.subjectID)
	default:
		_, err = uow.RequestRepository().Get(ctx, q.subjectID)
	}
	if err != nil {
		return nil, err
	}

	return uow.AuditLogRepository().ListBySubject(ctx, q.subjectID)
}
