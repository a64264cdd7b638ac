// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work wraps one database transaction. Repositories obtained after Begin run
// inside it; repositories obtained without Begin run directly on the connection pool,
// which is how the read side uses them.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	r, err := uow.RequestRepository().GetForUpdate(ctx, id)
//	// ... change r, build the audit entry
//	if err = uow.RequestRepository().Update(ctx, r); err != nil {
//	    return err
//	}
//	if err = uow.AuditLogRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction, which the
// deferred call ignores.
package postgres

import (
	"context"

	"restaurant/internal/adapters/out/postgres/allocationrepo"
	"restaurant/internal/adapters/out/postgres/auditrepo"
	"restaurant/internal/adapters/out/postgres/chatrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/requestrepo"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// Models lists the DTOs that make up the schema, in migration order.
func Models() []any {
	return []any{
		&requestrepo.RequestDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&auditrepo.EntryDTO{},
		&allocationrepo.TableAllocationDTO{},
		&chatrepo.MessageDTO{},
	}
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory of units of work over db.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a new unit of work. Call Begin before using its repositories
// transactionally.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork is not safe for concurrent use.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. A second Begin on the same unit of work is a no-op,
// there are no nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit commits the open transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback aborts the open transaction. After Commit it returns gorm.ErrInvalidTransaction,
// which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// RequestRepository returns the request repository bound to the current transaction.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	return requestrepo.NewGormRequestRepository(uow.conn())
}

// OrderRepository returns the order repository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AuditLogRepository returns the audit log repository bound to the current transaction.
func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return auditrepo.NewGormAuditLogRepository(uow.conn())
}

// TableAllocationRepository returns the allocation repository bound to the current transaction.
func (uow *GormUnitOfWork) TableAllocationRepository() ports.TableAllocationRepository {
	return allocationrepo.NewGormTableAllocationRepository(uow.conn())
}

// ChatRepository returns the chat repository bound to the current transaction.
func (uow *GormUnitOfWork) ChatRepository() ports.ChatRepository {
	return chatrepo.NewGormChatRepository(uow.conn())
}
