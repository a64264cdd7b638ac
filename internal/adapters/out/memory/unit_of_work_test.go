package memory_test

import (
	"context"
	"testing"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/core/domain/model/audit"
	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/request"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

func newRequest(t *testing.T, owner string, table int, content string, createdAt time.Time) *request.Request {
	t.Helper()
	tn, err := kernel.NewTableNumber(table)
	require.NoError(t, err)
	r, err := request.NewRequest(kernel.NewUUID(), owner, tn, content, createdAt)
	require.NoError(t, err)
	return r
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	committed := newRequest(t, "s-1", 4, "water", t0)
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, committed))
	require.NoError(t, uow.Commit(ctx))

	discarded := newRequest(t, "s-1", 4, "bread", t0)
	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RequestRepository().Add(ctx, discarded))
	require.NoError(t, uow.Rollback(ctx))

	reader := factory.Create()
	_, err := reader.RequestRepository().Get(ctx, committed.ID())
	require.NoError(t, err)
	_, err = reader.RequestRepository().Get(ctx, discarded.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUnitOfWork_CommitWithoutBegin(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()

	assert.ErrorIs(t, uow.Commit(context.Background()), memory.ErrNoActiveTransaction)
	assert.ErrorIs(t, uow.Rollback(context.Background()), memory.ErrNoActiveTransaction)
}

func TestUnitOfWork_BeginTwice(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	assert.NoError(t, uow.Begin(ctx))
}

func TestUnitOfWork_BeginHonoursContext(t *testing.T) {
	ctx := context.Background()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	holder := factory.Create()
	require.NoError(t, holder.Begin(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	err := factory.Create().Begin(waitCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, holder.Commit(ctx))

	// the abandoned waiter must release the lock once it gets it
	next := factory.Create()
	require.NoError(t, next.Begin(ctx))
	require.NoError(t, next.Rollback(ctx))
}

func TestRequestRepository_ListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	repo := uow.RequestRepository()

	late := newRequest(t, "s-1", 4, "bill", t0.Add(time.Minute))
	early := newRequest(t, "s-1", 4, "water", t0)
	other := newRequest(t, "s-2", 5, "napkins", t0)
	for _, r := range []*request.Request{late, early, other} {
		require.NoError(t, repo.Add(ctx, r))
	}
	_, err := late.ChangeStatus(request.InProgress, kernel.RoleWaiter, t0.Add(2*time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, late))

	all, err := repo.List(ctx, ports.RequestFilter{OwnerID: "s-1"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].ID().IsEqual(early.ID()))
	assert.Equal(t, request.InProgress, all[1].Status())

	pending, err := repo.List(ctx, ports.RequestFilter{Statuses: []request.Status{request.New}})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	old, err := repo.List(ctx, ports.RequestFilter{CreatedBefore: t0.Add(time.Second), TableNumber: 5})
	require.NoError(t, err)
	require.Len(t, old, 1)
	assert.True(t, old[0].ID().IsEqual(other.ID()))
}

func TestRequestRepository_AddDuplicateAndUpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().RequestRepository()
	r := newRequest(t, "s-1", 4, "water", t0)

	require.NoError(t, repo.Add(ctx, r))
	assert.ErrorIs(t, repo.Add(ctx, r), errs.ErrConflict)
	assert.ErrorIs(t, repo.Update(ctx, newRequest(t, "s-1", 4, "x", t0)), errs.ErrObjectNotFound)
}

func TestOrderRepository_RoundTripAndActiveSession(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().OrderRepository()
	tn, _ := kernel.NewTableNumber(7)

	closed, err := order.NewOrder(kernel.NewUUID(), tn, "s-1", t0)
	require.NoError(t, err)
	_, err = closed.ChangeStatus(order.Cancelled, kernel.RoleWaiter, t0)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, closed))

	_, err = repo.GetActiveBySession(ctx, "s-1")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	open, err := order.NewOrder(kernel.NewUUID(), tn, "s-1", t0)
	require.NoError(t, err)
	price, err := kernel.MoneyFromString("12")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", price, 2,
		[]string{"large"}, []string{"basil"}, "no garlic", t0)
	require.NoError(t, err)
	require.NoError(t, open.AddItem(item, t0))
	require.NoError(t, repo.Add(ctx, open))

	active, err := repo.GetActiveBySession(ctx, "s-1")
	require.NoError(t, err)
	require.True(t, active.IsEqual(open))
	require.Len(t, active.Items(), 1)

	got := active.Items()[0]
	assert.Equal(t, "Margherita", got.Name())
	assert.Equal(t, []string{"large"}, got.Options())
	assert.Equal(t, []string{"basil"}, got.Extras())
	assert.Equal(t, "no garlic", got.SpecialInstructions())
	assert.Equal(t, "24.00", got.Subtotal().String())

	listed, err := repo.List(ctx, ports.OrderFilter{TableNumber: tn, Statuses: []order.Status{order.New}})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestAuditLogRepository_OrderIncludesItems(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().AuditLogRepository()
	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()

	orderEntry, err := audit.NewEntry(kernel.NewUUID(), audit.SubjectOrder, orderID, nil,
		kernel.RoleWaiter, "New", "Acknowledged", t0)
	require.NoError(t, err)
	itemEntry, err := audit.NewEntry(kernel.NewUUID(), audit.SubjectOrderItem, itemID, &orderID,
		kernel.RoleWaiter, "New", "InProgress", t0.Add(time.Second))
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, orderEntry))
	require.NoError(t, repo.Append(ctx, itemEntry))

	forOrder, err := repo.ListBySubject(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, forOrder, 2)

	forItem, err := repo.ListBySubject(ctx, itemID)
	require.NoError(t, err)
	assert.Len(t, forItem, 1)

	none, err := repo.ListBySubject(ctx, kernel.NewUUID())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTableAllocationRepository_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().TableAllocationRepository()
	t3, _ := kernel.NewTableNumber(3)
	t1, _ := kernel.NewTableNumber(1)

	for _, a := range []struct {
		table  kernel.TableNumber
		waiter string
	}{{t3, "w-1"}, {t1, "w-1"}, {t3, "w-2"}} {
		alloc, err := allocation.NewTableAllocation(a.table, a.waiter, t0)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, alloc))
	}

	got, err := repo.Get(ctx, t3)
	require.NoError(t, err)
	assert.Equal(t, "w-2", got.WaiterID())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].TableNumber().Int())

	t9, _ := kernel.NewTableNumber(9)
	_, err = repo.Get(ctx, t9)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestChatRepository_ListBySession(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().ChatRepository()

	for _, m := range []struct {
		session string
		author  chat.Author
		content string
	}{{"s-1", chat.AuthorUser, "hi"}, {"s-2", chat.AuthorUser, "hey"}, {"s-1", chat.AuthorAssistant, "hello"}} {
		msg, err := chat.NewMessage(kernel.NewUUID(), m.session, m.author, m.content, "", t0)
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, msg))
	}

	history, err := repo.ListBySession(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].Content())
	assert.Equal(t, chat.AuthorAssistant, history[1].Author())
}
