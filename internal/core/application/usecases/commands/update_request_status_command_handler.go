package commands

import (
	"context"

	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/domain/services"
)

// RequestTransition is the committed outcome of an UpdateRequestStatusCommand. Entry is
// nil when the status did not change.
type RequestTransition struct {
	Request  *request.Request
	Previous request.Status
	Entry    *audit.Entry
}

// Changed reports whether the status moved.
func (t RequestTransition) Changed() bool {
	return t.Entry != nil
}

// UpdateRequestStatusCommandHandler loads the request under a row lock, lets the engine
// apply the transition, then stores the request and its audit entry in one transaction.
type UpdateRequestStatusCommandHandler struct {
	uowFactory RequestUoWFactory
	engine     services.StatusTransitionEngine
}

// NewUpdateRequestStatusCommandHandler creates the handler.
func NewUpdateRequestStatusCommandHandler(
	uowFactory RequestUoWFactory,
	engine services.StatusTransitionEngine,
) UpdateRequestStatusCommandHandler {
	return UpdateRequestStatusCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle locks the request, applies the transition and content change, and appends the
// audit entry in one unit of work.
func (h UpdateRequestStatusCommandHandler) Handle(ctx context.Context, cmd UpdateRequestStatusCommand) (RequestTransition, error) {
	if err := cmd.Validate(); err != nil {
		return RequestTransition{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RequestTransition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()

	r, err := requestRepo.GetForUpdate(ctx, cmd.RequestID())
	if err != nil {
		return RequestTransition{}, err
	}
	previous := r.Status()

	entry, err := h.engine.ApplyRequestTransition(r, cmd.Status(), cmd.Role(), cmd.Content())
	if err != nil {
		observeRejection(audit.SubjectRequest, err)
		return RequestTransition{}, err
	}

	if entry == nil && cmd.Content() == nil {
		return RequestTransition{Request: r, Previous: previous}, nil
	}

	if err = requestRepo.Update(ctx, r); err != nil {
		return RequestTransition{}, err
	}

	if entry != nil {
		if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
			return RequestTransition{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return RequestTransition{}, err
	}
	if entry != nil {
		observeTransition(entry)
	}

	return RequestTransition{Request: r, Previous: previous, Entry: entry}, nil
}
