package commands

import (
	"context"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/services"
)

type AllocateTablesCommandHandler struct {
	uowFactory AllocationUoWFactory
	engine     services.StatusTransitionEngine
}

// NewAllocateTablesCommandHandler creates the handler.
func NewAllocateTablesCommandHandler(uowFactory AllocationUoWFactory, engine services.StatusTransitionEngine) AllocateTablesCommandHandler {
	return AllocateTablesCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle saves one allocation per table, replacing earlier waiters.
func (h AllocateTablesCommandHandler) Handle(ctx context.Context, cmd AllocateTablesCommand) ([]allocation.TableAllocation, error) {
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

	repo := uow.TableAllocationRepository()
	now := h.engine.Now()

	saved := make([]allocation.TableAllocation, 0, len(cmd.Tables()))
	for _, table := range cmd.Tables() {
		a, err := allocation.NewTableAllocation(table, cmd.WaiterID(), now)
		if err != nil {
			return nil, err
		}
		if err = repo.Save(ctx, a); err != nil {
			return nil, err
		}
		saved = append(saved, a)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}
