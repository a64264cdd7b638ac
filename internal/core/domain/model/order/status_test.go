package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownRoles = []kernel.Role{kernel.RoleCustomer, kernel.RoleWaiter, kernel.RoleAdmin}

func TestStatus_ParseStatus(t *testing.T) {
	testCases := map[string]order.Status{
		"new":          order.New,
		"Acknowledged": order.Acknowledged,
		"in-progress":  order.InProgress,
		"Completed":    order.Complete,
		"delivered":    order.Delivered,
		"PAID":         order.Paid,
		"canceled":     order.Cancelled,
		"rejected":     order.Rejected,
	}
	for in, expected := range testCases {
		s, err := order.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, s, in)
	}

	_, err := order.ParseStatus("OnHold")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_SameStatusIsAlwaysAllowed(t *testing.T) {
	for _, s := range order.Statuses() {
		for _, role := range append(knownRoles, kernel.Role("kitchen")) {
			require.NoError(t, s.ValidateTransition(s, role), "%s by %s", s, role)
		}
	}
}

func TestStatus_DeliveredToPaid(t *testing.T) {
	for _, role := range []kernel.Role{kernel.RoleWaiter, kernel.RoleAdmin} {
		require.NoError(t, order.Delivered.ValidateTransition(order.Paid, role))
	}

	err := order.Delivered.ValidateTransition(order.Paid, kernel.RoleCustomer)
	var transitionErr *errs.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, []string{"Rejected"}, transitionErr.Allowed)
}

func TestStatus_TerminalStatusesAreClosedForEveryRole(t *testing.T) {
	for _, from := range []order.Status{order.Paid, order.Cancelled, order.Rejected} {
		for _, role := range append(knownRoles, kernel.Role("kitchen")) {
			for _, to := range order.Statuses() {
				if to == from {
					continue
				}
				require.ErrorIs(t, from.ValidateTransition(to, role), errs.ErrInvalidTransition, "%s -> %s by %s", from, to, role)
			}
		}
	}
}

func TestStatus_StaffTable(t *testing.T) {
	assert.Equal(t, []order.Status{order.Acknowledged, order.InProgress, order.Cancelled}, order.New.AllowedTransitions(kernel.RoleWaiter))
	assert.Equal(t, []order.Status{order.Complete, order.Cancelled}, order.InProgress.AllowedTransitions(kernel.RoleAdmin))
	assert.Equal(t, []order.Status{order.InProgress, order.Delivered}, order.Complete.AllowedTransitions(kernel.RoleWaiter))

	require.ErrorIs(t, order.New.ValidateTransition(order.Paid, kernel.RoleWaiter), errs.ErrInvalidTransition)
	require.ErrorIs(t, order.Complete.ValidateTransition(order.Cancelled, kernel.RoleAdmin), errs.ErrInvalidTransition)
}

func TestStatus_CustomerIsReadMostly(t *testing.T) {
	require.NoError(t, order.New.ValidateTransition(order.Cancelled, kernel.RoleCustomer))
	require.NoError(t, order.Acknowledged.ValidateTransition(order.Cancelled, kernel.RoleCustomer))

	for _, from := range []order.Status{order.InProgress, order.Complete} {
		assert.Empty(t, from.AllowedTransitions(kernel.RoleCustomer))
	}
}

func TestStatus_UnrecognizedRoleMayMoveAnyOpenOrder(t *testing.T) {
	role := kernel.ParseRole("kitchen")

	require.NoError(t, order.New.ValidateTransition(order.Paid, role))
	require.NoError(t, order.Delivered.ValidateTransition(order.New, role))
	assert.Len(t, order.InProgress.AllowedTransitions(role), len(order.Statuses())-1)
	assert.NotContains(t, order.InProgress.AllowedTransitions(role), order.InProgress)
}

func TestItemStatus_Transitions(t *testing.T) {
	t.Run("staff moves items through the kitchen", func(t *testing.T) {
		require.NoError(t, order.ItemNew.ValidateTransition(order.ItemInProgress, kernel.RoleWaiter))
		require.NoError(t, order.ItemInProgress.ValidateTransition(order.ItemDelivered, kernel.RoleAdmin))
		require.ErrorIs(t, order.ItemNew.ValidateTransition(order.ItemDelivered, kernel.RoleWaiter), errs.ErrInvalidTransition)
	})

	t.Run("customer may only cancel new items", func(t *testing.T) {
		require.NoError(t, order.ItemNew.ValidateTransition(order.ItemCancelled, kernel.RoleCustomer))
		require.ErrorIs(t, order.ItemInProgress.ValidateTransition(order.ItemCancelled, kernel.RoleCustomer), errs.ErrInvalidTransition)
	})

	t.Run("delivered and cancelled are terminal", func(t *testing.T) {
		for _, from := range []order.ItemStatus{order.ItemDelivered, order.ItemCancelled} {
			for _, role := range append(knownRoles, kernel.Role("kitchen")) {
				assert.Empty(t, from.AllowedTransitions(role))
			}
		}
	})

	t.Run("parse accepts complete as delivered", func(t *testing.T) {
		s, err := order.ParseItemStatus("Complete")
		require.NoError(t, err)
		assert.Equal(t, order.ItemDelivered, s)
	})
}
