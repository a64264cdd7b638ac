package memory

import (
	"context"
	"slices"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type requestRepository struct {
	uow *UnitOfWork
}

// Add stores a new request; duplicate ids conflict.
func (r *requestRepository) Add(_ context.Context, req *request.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *snapshot) error {
		if _, ok := s.requests[req.ID().Bytes()]; ok {
			return errs.NewConflictError("request", "id "+req.ID().String()+" already exists")
		}
		s.requests[req.ID().Bytes()] = requestFromDomain(s.next(), req)
		return nil
	})
}

// Update replaces the stored request.
func (r *requestRepository) Update(_ context.Context, req *request.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *snapshot) error {
		current, ok := s.requests[req.ID().Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("request", req.ID().String())
		}
		s.requests[req.ID().Bytes()] = requestFromDomain(current.seq, req)
		return nil
	})
}

// Get returns a copy of the stored request.
func (r *requestRepository) Get(_ context.Context, id kernel.UUID) (*request.Request, error) {
	var found *request.Request
	err := r.uow.with(func(s *snapshot) error {
		rec, ok := s.requests[id.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("request", id.String())
		}
		var err error
		found, err = rec.toDomain()
		return err
	})
	return found, err
}

// GetForUpdate needs no row lock: the transaction already holds the store lock.
func (r *requestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	return r.Get(ctx, id)
}

// LockOwner is a no-op: the transaction already holds the store lock.
func (r *requestRepository) LockOwner(context.Context, string) error {
	return nil
}

// List returns matching requests, oldest first.
func (r *requestRepository) List(_ context.Context, filter ports.RequestFilter) ([]*request.Request, error) {
	var out []*request.Request
	err := r.uow.with(func(s *snapshot) error {
		records := make([]requestRecord, 0, len(s.requests))
		for _, rec := range s.requests {
			if matchesRequest(rec, filter) {
				records = append(records, rec)
			}
		}
		slices.SortFunc(records, func(a, b requestRecord) int {
			if c := a.createdAt.Compare(b.createdAt); c != 0 {
				return c
			}
			return int(a.seq - b.seq)
		})

		out = make([]*request.Request, 0, len(records))
		for _, rec := range records {
			req, err := rec.toDomain()
			if err != nil {
				return err
			}
			out = append(out, req)
		}
		return nil
	})
	return out, err
}

func matchesRequest(rec requestRecord, f ports.RequestFilter) bool {
	if f.OwnerID != "" && rec.ownerID != f.OwnerID {
		return false
	}
	if f.TableNumber != 0 && rec.tableNumber != f.TableNumber {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, rec.status) {
		return false
	}
	if !f.CreatedBefore.IsZero() && !rec.createdAt.Before(f.CreatedBefore) {
		return false
	}
	return true
}

type orderRepository struct {
	uow *UnitOfWork
}

// Add stores a new order with its items; duplicate ids conflict.
func (r *orderRepository) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *snapshot) error {
		if _, ok := s.orders[o.ID().Bytes()]; ok {
			return errs.NewConflictError("order", "id "+o.ID().String()+" already exists")
		}
		s.orders[o.ID().Bytes()] = orderFromDomain(s.next(), o)
		return nil
	})
}

// Update replaces the stored order and items.
func (r *orderRepository) Update(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *snapshot) error {
		current, ok := s.orders[o.ID().Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("order", o.ID().String())
		}
		s.orders[o.ID().Bytes()] = orderFromDomain(current.seq, o)
		return nil
	})
}

// Get returns a copy of the stored order.
func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	var found *order.Order
	err := r.uow.with(func(s *snapshot) error {
		rec, ok := s.orders[id.Bytes()]
		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		var err error
		found, err = rec.toDomain()
		return err
	})
	return found, err
}

// GetForUpdate needs no row lock: the transaction already holds the store lock.
func (r *orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

// GetActiveBySession returns the newest non-terminal order of the session.
func (r *orderRepository) GetActiveBySession(ctx context.Context, sessionID string) (*order.Order, error) {
	orders, err := r.List(ctx, ports.OrderFilter{SessionID: sessionID})
	if err != nil {
		return nil, err
	}
	for i := len(orders) - 1; i >= 0; i-- {
		if !orders[i].Status().IsTerminal() {
			return orders[i], nil
		}
	}
	return nil, errs.NewObjectNotFoundError("active order of session", sessionID)
}

// List returns matching orders, oldest first.
func (r *orderRepository) List(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	var out []*order.Order
	err := r.uow.with(func(s *snapshot) error {
		records := make([]orderRecord, 0, len(s.orders))
		for _, rec := range s.orders {
			if filter.SessionID != "" && rec.sessionID != filter.SessionID {
				continue
			}
			if filter.TableNumber != 0 && rec.tableNumber != filter.TableNumber {
				continue
			}
			if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, rec.status) {
				continue
			}
			records = append(records, rec)
		}
		slices.SortFunc(records, func(a, b orderRecord) int { return int(a.seq - b.seq) })

		out = make([]*order.Order, 0, len(records))
		for _, rec := range records {
			o, err := rec.toDomain()
			if err != nil {
				return err
			}
			out = append(out, o)
		}
		return nil
	})
	return out, err
}

type auditLogRepository struct {
	uow *UnitOfWork
}

// Append stores one entry.
func (r *auditLogRepository) Append(_ context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.uow.with(func(s *snapshot) error {
		s.auditLog = append(s.auditLog, entry)
		return nil
	})
}

// ListBySubject returns entries of the subject and its children, oldest first.
func (r *auditLogRepository) ListBySubject(_ context.Context, subjectID kernel.UUID) ([]*audit.Entry, error) {
	var out []*audit.Entry
	err := r.uow.with(func(s *snapshot) error {
		out = make([]*audit.Entry, 0)
		for _, e := range s.auditLog {
			parent := e.ParentID()
			if e.SubjectID().IsEqual(subjectID) || (parent != nil && parent.IsEqual(subjectID)) {
				out = append(out, e)
			}
		}
		return nil
	})
	return out, err
}

type tableAllocationRepository struct {
	uow *UnitOfWork
}

// Save inserts or replaces the allocation of a table.
func (r *tableAllocationRepository) Save(_ context.Context, a allocation.TableAllocation) error {
	return r.uow.with(func(s *snapshot) error {
		s.allocations[a.TableNumber()] = a
		return nil
	})
}

// Get returns the allocation of table or an ObjectNotFoundError.
func (r *tableAllocationRepository) Get(_ context.Context, table kernel.TableNumber) (allocation.TableAllocation, error) {
	var found allocation.TableAllocation
	err := r.uow.with(func(s *snapshot) error {
		a, ok := s.allocations[table]
		if !ok {
			return errs.NewObjectNotFoundError("table allocation", table.Int())
		}
		found = a
		return nil
	})
	return found, err
}

// List returns every allocation ordered by table number.
func (r *tableAllocationRepository) List(_ context.Context) ([]allocation.TableAllocation, error) {
	var out []allocation.TableAllocation
	err := r.uow.with(func(s *snapshot) error {
		out = make([]allocation.TableAllocation, 0, len(s.allocations))
		for _, a := range s.allocations {
			out = append(out, a)
		}
		slices.SortFunc(out, func(a, b allocation.TableAllocation) int {
			return a.TableNumber().Int() - b.TableNumber().Int()
		})
		return nil
	})
	return out, err
}

type chatRepository struct {
	uow *UnitOfWork
}

// Append stores one message.
func (r *chatRepository) Append(_ context.Context, m *chat.Message) error {
	return r.uow.with(func(s *snapshot) error {
		s.chat = append(s.chat, m)
		return nil
	})
}

// ListBySession returns the session messages, oldest first.
func (r *chatRepository) ListBySession(_ context.Context, sessionID string) ([]*chat.Message, error) {
	var out []*chat.Message
	err := r.uow.with(func(s *snapshot) error {
		out = make([]*chat.Message, 0)
		for _, m := range s.chat {
			if m.SessionID() == sessionID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}
