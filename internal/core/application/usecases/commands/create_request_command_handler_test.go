package commands_test

import (
	"errors"
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var activeFilter = ports.RequestFilter{
	OwnerID:  "session-1",
	Statuses: []request.Status{request.New, request.OnHold},
}

func TestCreateRequestCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "extra napkins")
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, testEngine())
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, request.New, created.Status())
	assert.Equal(t, fixedNow, created.CreatedAt())
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LockOwner", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_DuplicateReadyToPay(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "Ready to pay now")
	require.NoError(t, err)

	existing, err := request.NewRequest(kernel.NewUUID(), "session-1", 4, "ready to pay", fixedNow)
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("LockOwner", ctx, "session-1").Return(nil).Once(),
		repo.On("List", ctx, activeFilter).Return([]*request.Request{existing}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, testEngine())
	created, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Nil(t, created)
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_ReadyToPayWithoutActiveDuplicate(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "ready to pay")
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("LockOwner", ctx, "session-1").Return(nil).Once(),
		repo.On("List", ctx, activeFilter).Return([]*request.Request{}, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*request.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRequestCommandHandler(factory, testEngine())
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateRequestCommandHandler_Handle_Errors(t *testing.T) {
	t.Run("not constructed", func(t *testing.T) {
		h := commands.NewCreateRequestCommandHandler(new(MockRequestUoWFactory), testEngine())

		_, err := h.Handle(t.Context(), commands.CreateRequestCommand{})

		require.ErrorIs(t, err, commands.ErrCreateRequestCommandIsNotConstructed)
	})

	t.Run("begin fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "water")
		uow := new(MockUoW)
		factory := new(MockRequestUoWFactory)
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
		)

		_, err := commands.NewCreateRequestCommandHandler(factory, testEngine()).Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
	})

	t.Run("owner lock failure is passed through", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "ready to pay")
		lockErr := errors.New("lock timeout")
		repo := new(MockRequestRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("RequestRepository").Return(repo).Once(),
			repo.On("LockOwner", ctx, "session-1").Return(lockErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockRequestUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err := commands.NewCreateRequestCommandHandler(factory, testEngine()).Handle(ctx, cmd)

		require.ErrorIs(t, err, lockErr)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("add failure is passed through", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewCreateRequestCommand(kernel.NewUUID(), "session-1", 4, "water")
		storeErr := errors.New("connection reset")
		repo := new(MockRequestRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("RequestRepository").Return(repo).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*request.Request")).Return(storeErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockRequestUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err := commands.NewCreateRequestCommandHandler(factory, testEngine()).Handle(ctx, cmd)

		require.ErrorIs(t, err, storeErr)
		uow.AssertExpectations(t)
	})
}
