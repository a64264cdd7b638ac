// Package memory is the in-process backing of the unit of work, used by tests and by
// STORAGE=memory deployments. A transaction holds a store-wide lock from Begin to
// Commit or Rollback and works on a copy of the data, so conflicting writes are
// serialized and a rollback leaves no trace.
package memory

import (
	"context"
	"errors"
	"sync"

	"restaurant/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// Store owns the data shared by every unit of work created from it.
type Store struct {
	mu   sync.Mutex
	data *snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newSnapshot()}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates units of work over store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a new unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is not safe for concurrent use; create one per operation.
type UnitOfWork struct {
	store *Store
	tx    *snapshot
}

// Begin blocks until no other transaction is active on the store or ctx is done.
// Calling it again on an open unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	locked := make(chan struct{})
	go func() {
		uow.store.mu.Lock()
		close(locked)
	}()

	select {
	case <-locked:
	case <-ctx.Done():
		go func() {
			<-locked
			uow.store.mu.Unlock()
		}()
		return ctx.Err()
	}

	uow.tx = uow.store.data.clone()
	return nil
}

// Commit publishes the transaction snapshot and releases the store lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	uow.store.data = uow.tx
	uow.tx = nil
	uow.store.mu.Unlock()
	return nil
}

// Rollback discards the snapshot and releases the store lock. After Commit it returns
// ErrNoActiveTransaction.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoActiveTransaction
	}
	uow.tx = nil
	uow.store.mu.Unlock()
	return nil
}

// with runs fn against the open transaction, or against the committed data under the
// store lock when no transaction is active.
func (uow *UnitOfWork) with(fn func(s *snapshot) error) error {
	if uow.tx != nil {
		return fn(uow.tx)
	}
	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()
	return fn(uow.store.data)
}

// RequestRepository returns the request repository of this unit of work.
func (uow *UnitOfWork) RequestRepository() ports.RequestRepository {
	return &requestRepository{uow: uow}
}

// OrderRepository returns the order repository of this unit of work.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

// AuditLogRepository returns the audit log repository of this unit of work.
func (uow *UnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return &auditLogRepository{uow: uow}
}

// TableAllocationRepository returns the allocation repository of this unit of work.
func (uow *UnitOfWork) TableAllocationRepository() ports.TableAllocationRepository {
	return &tableAllocationRepository{uow: uow}
}

// ChatRepository returns the chat repository of this unit of work.
func (uow *UnitOfWork) ChatRepository() ports.ChatRepository {
	return &chatRepository{uow: uow}
}
