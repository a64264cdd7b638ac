package ports

import (
	"context"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/kernel"
)

type TableAllocationRepository interface {
	// Save creates or replaces the allocation of a table.
	Save(ctx context.Context, a allocation.TableAllocation) error

	// Get returns the allocation of a table or an ObjectNotFoundError.
	Get(ctx context.Context, table kernel.TableNumber) (allocation.TableAllocation, error)

	// List returns all allocations ordered by table number.
	List(ctx context.Context) ([]allocation.TableAllocation, error)
}
