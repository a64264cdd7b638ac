package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command or query.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it use the
// transaction started by Begin; without Begin they read and write outside a transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error when no transaction is active.
	Rollback(ctx context.Context) error

	RequestRepository() RequestRepository
	OrderRepository() OrderRepository
	AuditLogRepository() AuditLogRepository
	TableAllocationRepository() TableAllocationRepository
	ChatRepository() ChatRepository
}
