package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/pkg/guard"
)

var ErrListTableAllocationsQueryIsNotConstructed = errors.New(
	"ListTableAllocationsQuery must be created via NewListTableAllocationsQuery constructor",
)

type ListTableAllocationsQuery struct {
	guard guard.ConstructorGuard
}

// NewListTableAllocationsQuery creates the query.
func NewListTableAllocationsQuery() ListTableAllocationsQuery {
	return ListTableAllocationsQuery{guard: guard.NewConstructorGuard()}
}

// Validate reports whether the query was built by NewListTableAllocationsQuery.
func (q ListTableAllocationsQuery) Validate() error {
	return q.guard.Validate(ErrListTableAllocationsQueryIsNotConstructed)
}

type ListTableAllocationsQueryHandler struct {
	uowFactory UoWFactory
}

// NewListTableAllocationsQueryHandler creates the handler.
func NewListTableAllocationsQueryHandler(uowFactory UoWFactory) ListTableAllocationsQueryHandler {
	return ListTableAllocationsQueryHandler{uowFactory: uowFactory}
}

// Handle returns every allocation ordered by table number.
func (h ListTableAllocationsQueryHandler) Handle(ctx context.Context, q ListTableAllocationsQuery) ([]allocation.TableAllocation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().TableAllocationRepository().List(ctx)
}
