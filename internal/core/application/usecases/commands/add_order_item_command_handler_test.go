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

func TestAddOrderItemCommandHandler_Handle_OpensOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewAddOrderItemCommand(orderID, kernel.NewUUID(), "session-1", 9, pizza(t, 2))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetActiveBySession", ctx, "session-1").Return(nil, errs.NewObjectNotFoundError("order", "session-1")).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	change, err := commands.NewAddOrderItemCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, change.Created)
	assert.True(t, change.Order.ID().IsEqual(orderID))
	assert.Equal(t, order.New, change.Order.Status())
	assert.Len(t, change.Order.Items(), 1)
	assert.Equal(t, "25.00", change.Order.Total().String())
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAddOrderItemCommandHandler_Handle_AppendsToActiveOrder(t *testing.T) {
	ctx := t.Context()
	existing, err := order.NewOrder(kernel.NewUUID(), 9, "session-1", fixedNow)
	require.NoError(t, err)
	cmd, err := commands.NewAddOrderItemCommand(kernel.NewUUID(), kernel.NewUUID(), "session-1", 9, pizza(t, 1))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetActiveBySession", ctx, "session-1").Return(existing, nil).Once(),
		repo.On("Update", ctx, existing).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	change, err := commands.NewAddOrderItemCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, change.Created)
	assert.True(t, change.Order.IsEqual(existing))
	assert.True(t, change.Item.ID().IsEqual(cmd.ItemID()))
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
