package commands

import (
	"context"

	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// CreateRequestCommandHandler checks the duplicate "ready to pay" guard and stores the
// new request in New status.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	engine     services.StatusTransitionEngine
}

// NewCreateRequestCommandHandler creates the handler.
func NewCreateRequestCommandHandler(
	uowFactory RequestUoWFactory,
	engine services.StatusTransitionEngine,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns a ConflictError when the owner already has an active "ready to pay"
// request. The guard is only evaluated here, never on status updates. Concurrent
// creations for the same owner are serialized by the owner lock before the guard reads.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (*request.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()

	if request.IsReadyToPayContent(cmd.Content()) {
		if err := requestRepo.LockOwner(ctx, cmd.OwnerID()); err != nil {
			return nil, err
		}
		active, err := requestRepo.List(ctx, ports.RequestFilter{
			OwnerID:  cmd.OwnerID(),
			Statuses: []request.Status{request.New, request.OnHold},
		})
		if err != nil {
			return nil, err
		}
		if err = h.engine.GuardReadyToPay(cmd.OwnerID(), cmd.Content(), active); err != nil {
			return nil, err
		}
	}

	created, err := request.NewRequest(cmd.RequestID(), cmd.OwnerID(), cmd.TableNumber(), cmd.Content(), h.engine.Now())
	if err != nil {
		return nil, err
	}

	if err = requestRepo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
