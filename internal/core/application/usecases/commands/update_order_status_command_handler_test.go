package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrder(t *testing.T, status order.Status) (*order.Order, *order.Item) {
	t.Helper()
	details := pizza(t, 1)
	item, err := order.NewItem(kernel.NewUUID(), details.Name, details.UnitPrice, details.Quantity, nil, nil, "", fixedNow)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), 9, "session-1", status, []*order.Item{item}, fixedNow, fixedNow)
	require.NoError(t, err)
	return o, item
}

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	_, err := commands.NewUpdateOrderStatusCommand("ord-404", order.Paid, kernel.RoleWaiter)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = commands.NewUpdateOrderStatusCommand(kernel.NewUUID().String(), order.Unknown, kernel.RoleWaiter)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestUpdateOrderStatusCommandHandler_Handle_DeliveredToPaid(t *testing.T) {
	ctx := t.Context()
	o, _ := storedOrder(t, order.Delivered)
	cmd, err := commands.NewUpdateOrderStatusCommand(o.ID().String(), order.Paid, kernel.RoleAdmin)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		repo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewUpdateOrderStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.Equal(t, order.Delivered, result.Previous)
	assert.Equal(t, order.Paid, result.Order.Status())
	assert.Equal(t, "admin changed Delivered → Paid", result.Entry.Action())
	uow.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_PaidIsFinal(t *testing.T) {
	ctx := t.Context()
	o, _ := storedOrder(t, order.Paid)
	cmd, _ := commands.NewUpdateOrderStatusCommand(o.ID().String(), order.InProgress, kernel.RoleWaiter)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewUpdateOrderStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateOrderItemStatusCommandHandler_Handle(t *testing.T) {
	t.Run("moves the item and audits it", func(t *testing.T) {
		ctx := t.Context()
		o, item := storedOrder(t, order.InProgress)
		cmd, err := commands.NewUpdateOrderItemStatusCommand(o.ID().String(), item.ID().String(), order.ItemInProgress, kernel.RoleWaiter)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		auditRepo := new(MockAuditLogRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("AuditLogRepository").Return(auditRepo).Once(),
			auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		result, err := commands.NewUpdateOrderItemStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, order.ItemNew, result.Previous)
		assert.Equal(t, order.ItemInProgress, result.Item.Status())
		assert.True(t, result.Entry.ParentID().IsEqual(o.ID()))
		uow.AssertExpectations(t)
	})

	t.Run("unknown item is not found", func(t *testing.T) {
		ctx := t.Context()
		o, _ := storedOrder(t, order.InProgress)
		cmd, _ := commands.NewUpdateOrderItemStatusCommand(o.ID().String(), kernel.NewUUID().String(), order.ItemCancelled, kernel.RoleWaiter)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err := commands.NewUpdateOrderItemStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("malformed item id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderItemStatusCommand(kernel.NewUUID().String(), "item-1", order.ItemCancelled, kernel.RoleWaiter)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
