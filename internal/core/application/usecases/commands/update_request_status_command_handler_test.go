package commands_test

import (
	"errors"
	"testing"
	"time"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedRequest(t *testing.T, status request.Status) *request.Request {
	t.Helper()
	r, err := request.RestoreRequest(kernel.NewUUID(), "session-1", 2, "more bread", status, fixedNow.Add(-10*time.Minute), fixedNow.Add(-10*time.Minute))
	require.NoError(t, err)
	return r
}

func TestUpdateRequestStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	r := storedRequest(t, request.New)
	cmd, err := commands.NewUpdateRequestStatusCommand(r.ID().String(), request.InProgress, kernel.RoleWaiter, nil)
	require.NoError(t, err)

	repo := new(MockRequestRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	var appended *audit.Entry
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		repo.On("Update", ctx, r).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) { appended = args.Get(1).(*audit.Entry) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Changed())
	assert.Equal(t, request.New, result.Previous)
	assert.Equal(t, request.InProgress, result.Request.Status())
	require.NotNil(t, appended)
	assert.Equal(t, "waiter changed New → InProgress", appended.Action())
	repo.AssertExpectations(t)
	auditRepo.AssertNumberOfCalls(t, "Append", 1)
	uow.AssertExpectations(t)
}

func TestUpdateRequestStatusCommandHandler_Handle_NoOpWritesNothing(t *testing.T) {
	ctx := t.Context()
	r := storedRequest(t, request.OnHold)
	cmd, _ := commands.NewUpdateRequestStatusCommand(r.ID().String(), request.OnHold, kernel.RoleCustomer, nil)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Nil(t, result.Entry)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "AuditLogRepository")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateRequestStatusCommandHandler_Handle_ContentOnly(t *testing.T) {
	ctx := t.Context()
	r := storedRequest(t, request.New)
	content := "more bread, gluten free"
	cmd, _ := commands.NewUpdateRequestStatusCommand(r.ID().String(), request.New, kernel.RoleCustomer, &content)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		repo.On("Update", ctx, r).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Changed())
	assert.Equal(t, content, result.Request.Content())
	uow.AssertNotCalled(t, "AuditLogRepository")
	uow.AssertExpectations(t)
}

func TestUpdateRequestStatusCommandHandler_Handle_Rejected(t *testing.T) {
	ctx := t.Context()
	r := storedRequest(t, request.New)
	cmd, _ := commands.NewUpdateRequestStatusCommand(r.ID().String(), request.InProgress, kernel.RoleCustomer, nil)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, []string{"Cancelled"}, transitionErr.Allowed)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateRequestStatusCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewUpdateRequestStatusCommand(id.String(), request.Acknowledged, kernel.RoleWaiter, nil)

	repo := new(MockRequestRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("request", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateRequestStatusCommandHandler_Handle_AppendFailureIsPassedThrough(t *testing.T) {
	ctx := t.Context()
	r := storedRequest(t, request.Acknowledged)
	cmd, _ := commands.NewUpdateRequestStatusCommand(r.ID().String(), request.OnHold, kernel.RoleAdmin, nil)
	storeErr := errors.New("audit table is read-only")

	repo := new(MockRequestRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RequestRepository").Return(repo).Once(),
		repo.On("GetForUpdate", ctx, r.ID()).Return(r, nil).Once(),
		repo.On("Update", ctx, r).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", ctx, mock.Anything).Return(storeErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockRequestUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err := commands.NewUpdateRequestStatusCommandHandler(factory, testEngine()).Handle(ctx, cmd)

	require.ErrorIs(t, err, storeErr)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
