package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery parses orderID. Ids that are not UUIDs name no order.
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	id, err := parseID("order", orderID)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetOrderQuery.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderQueryHandler struct {
	uowFactory UoWFactory
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(uowFactory UoWFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{uowFactory: uowFactory}
}

// Handle returns the order with its items or an ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, q GetOrderQuery) (*order.Order, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().OrderRepository().Get(ctx, q.OrderID())
}
