package commands_test

import (
	"context"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)

func testEngine() services.StatusTransitionEngine {
	return services.NewStatusTransitionEngine(func() time.Time { return fixedNow })
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) LockOwner(ctx context.Context, ownerID string) error {
	return m.Called(ctx, ownerID).Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context, filter ports.RequestFilter) ([]*request.Request, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveBySession(ctx context.Context, sessionID string) (*order.Order, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Append(ctx context.Context, e *audit.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockAuditLogRepository) ListBySubject(ctx context.Context, id kernel.UUID) ([]*audit.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

type MockTableAllocationRepository struct{ mock.Mock }

func (m *MockTableAllocationRepository) Save(ctx context.Context, a allocation.TableAllocation) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockTableAllocationRepository) Get(ctx context.Context, table kernel.TableNumber) (allocation.TableAllocation, error) {
	args := m.Called(ctx, table)
	return args.Get(0).(allocation.TableAllocation), args.Error(1)
}

func (m *MockTableAllocationRepository) List(ctx context.Context) ([]allocation.TableAllocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]allocation.TableAllocation), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) RequestRepository() ports.RequestRepository {
	return m.Called().Get(0).(ports.RequestRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AuditLogRepository() ports.AuditLogRepository {
	return m.Called().Get(0).(ports.AuditLogRepository)
}

func (m *MockUoW) TableAllocationRepository() ports.TableAllocationRepository {
	return m.Called().Get(0).(ports.TableAllocationRepository)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	return m.Called().Get(0).(commands.RequestUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	return m.Called().Get(0).(commands.AllocationUoW)
}
