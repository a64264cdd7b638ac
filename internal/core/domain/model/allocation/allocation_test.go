package allocation_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/allocation"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableAllocation(t *testing.T) {
	at := time.Now()

	a, err := allocation.NewTableAllocation(12, "waiter-7", at)
	require.NoError(t, err)
	assert.Equal(t, 12, a.TableNumber().Int())
	assert.Equal(t, "waiter-7", a.WaiterID())

	_, err = allocation.NewTableAllocation(0, " ", at)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
