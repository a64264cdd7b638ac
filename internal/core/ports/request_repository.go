package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
)

// RequestFilter narrows ListRequests. Zero fields match everything.
type RequestFilter struct {
	OwnerID       string
	TableNumber   kernel.TableNumber
	Statuses      []request.Status
	CreatedBefore time.Time
}

// RequestRepository defines the persistence contract for service requests.
type RequestRepository interface {
	// Add persists a new request.
	Add(ctx context.Context, r *request.Request) error

	// Update persists status, content and updated-at of an existing request.
	Update(ctx context.Context, r *request.Request) error

	// Get returns the request or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetForUpdate is Get plus a row lock held until the unit of work ends, so that
	// concurrent transitions on the same request are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// LockOwner serializes transactions that create requests for the same owner until
	// the unit of work ends. New rows cannot be row-locked, so duplicate guards that read
	// the owner's requests take this lock first.
	LockOwner(ctx context.Context, ownerID string) error

	// List returns matching requests, oldest first.
	List(ctx context.Context, filter RequestFilter) ([]*request.Request, error)
}
