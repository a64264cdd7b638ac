package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/pkg/guard"
)

var ErrGetRequestQueryIsNotConstructed = errors.New(
	"GetRequestQuery must be created via NewGetRequestQuery constructor",
)

type GetRequestQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRequestQuery reports an id that is not a UUID as not found.
func NewGetRequestQuery(requestID string) (GetRequestQuery, error) {
	id, err := parseID("request", requestID)
	if err != nil {
		return GetRequestQuery{}, err
	}
	return GetRequestQuery{requestID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetRequestQuery.
func (q GetRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestQueryIsNotConstructed)
}

// RequestID returns the request to read.
func (q GetRequestQuery) RequestID() kernel.UUID {
	return q.requestID
}

type GetRequestQueryHandler struct {
	uowFactory UoWFactory
}

// NewGetRequestQueryHandler creates the handler.
func NewGetRequestQueryHandler(uowFactory UoWFactory) GetRequestQueryHandler {
	return GetRequestQueryHandler{uowFactory: uowFactory}
}

// Handle returns the request or an ObjectNotFoundError.
func (h GetRequestQueryHandler) Handle(ctx context.Context, q GetRequestQuery) (*request.Request, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().RequestRepository().Get(ctx, q.RequestID())
}
