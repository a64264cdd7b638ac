package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderFilter narrows List; zero fields match everything.
type OrderFilter struct {
	SessionID   string
	TableNumber kernel.TableNumber
	Statuses    []order.Status
}

// OrderRepository defines the persistence contract for order aggregates. Items are
// stored and loaded together with their order.
type OrderRepository interface {
	Add(ctx context.Context, o *order.Order) error

	// Update persists the order status and inserts or updates its items.
	Update(ctx context.Context, o *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate locks the order row until the unit of work ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveBySession returns the session's most recent non-terminal order, or an
	// ObjectNotFoundError when there is none. Like GetForUpdate it locks the order row
	// until the unit of work ends.
	GetActiveBySession(ctx context.Context, sessionID string) (*order.Order, error)

	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)
}
