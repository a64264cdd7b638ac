package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/guard"
)

var ErrListRequestsQueryIsNotConstructed = errors.New(
	"ListRequestsQuery must be created via NewListRequestsQuery constructor",
)

// ListRequestsQuery lists requests by session, table and status. It backs both the
// customer view of a session and the staff dashboard.
type ListRequestsQuery struct {
	filter ports.RequestFilter

	guard guard.ConstructorGuard
}

// NewListRequestsQuery validates the filter statuses and table number.
func NewListRequestsQuery(filter ports.RequestFilter) (ListRequestsQuery, error) {
	if filter.TableNumber != 0 {
		if err := filter.TableNumber.Validate(); err != nil {
			return ListRequestsQuery{}, err
		}
	}
	for _, s := range filter.Statuses {
		if err := s.Validate(); err != nil {
			return ListRequestsQuery{}, err
		}
	}
	filter.Statuses = append([]request.Status(nil), filter.Statuses...)
	return ListRequestsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewListRequestsQuery.
func (q ListRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListRequestsQueryIsNotConstructed)
}

// Filter returns the validated filter.
func (q ListRequestsQuery) Filter() ports.RequestFilter {
	return q.filter
}

type ListRequestsQueryHandler struct {
	uowFactory UoWFactory
}

// NewListRequestsQueryHandler creates the handler.
func NewListRequestsQueryHandler(uowFactory UoWFactory) ListRequestsQueryHandler {
	return ListRequestsQueryHandler{uowFactory: uowFactory}
}

// Handle returns the matching requests, oldest first.
func (h ListRequestsQueryHandler) Handle(ctx context.Context, q ListRequestsQuery) ([]*request.Request, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().RequestRepository().List(ctx, q.Filter())
}
