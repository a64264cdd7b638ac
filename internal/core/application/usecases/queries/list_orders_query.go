package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

type ListOrdersQuery struct {
	filter ports.OrderFilter

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the filter statuses and table number.
func NewListOrdersQuery(filter ports.OrderFilter) (ListOrdersQuery, error) {
	if filter.TableNumber != 0 {
		if err := filter.TableNumber.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	filter.Statuses = append([]order.Status(nil), filter.Statuses...)
	return ListOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewListOrdersQuery.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Filter returns the validated filter.
func (q ListOrdersQuery) Filter() ports.OrderFilter {
	return q.filter
}

type ListOrdersQueryHandler struct {
	uowFactory UoWFactory
}

// NewListOrdersQueryHandler creates the handler.
func NewListOrdersQueryHandler(uowFactory UoWFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{uowFactory: uowFactory}
}

// Handle returns the matching orders, oldest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, q ListOrdersQuery) ([]*order.Order, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().OrderRepository().List(ctx, q.Filter())
}
