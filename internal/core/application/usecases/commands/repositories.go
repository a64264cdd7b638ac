// Package commands contains the operations that change front-of-house state.
// Every handler runs in one unit of work: Begin, deferred Rollback, explicit Commit.
package commands

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	TableAllocationRepoFactory interface {
		TableAllocationRepository() ports.TableAllocationRepository
	}

	// RequestUoW covers request changes and their audit trail.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
		AuditLogRepoFactory
	}

	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// OrderUoW covers order and item changes and their audit trail.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... apply the transition
	//   err = uow.AuditLogRepository().Append(ctx, entry)
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		AuditLogRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	AllocationUoW interface {
		TxManager
		TableAllocationRepoFactory
	}

	AllocationUoWFactory interface {
		Create() AllocationUoW
	}
)

// parseSubjectID turns a transport id into a UUID. An id that is not a UUID cannot name
// a stored entity, so it is reported as not found.
func parseSubjectID(subject, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewObjectNotFoundErrorWithCause(subject, raw, err)
	}
	return id, nil
}
