package kernel_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableNumber(t *testing.T) {
	t.Run("accepts bounds", func(t *testing.T) {
		for _, n := range []int{kernel.MinTableNumber, 12, kernel.MaxTableNumber} {
			tn, err := kernel.NewTableNumber(n)

			require.NoError(t, err)
			assert.Equal(t, n, tn.Int())
		}
	})

	t.Run("rejects values outside the range", func(t *testing.T) {
		for _, n := range []int{0, -3, kernel.MaxTableNumber + 1} {
			_, err := kernel.NewTableNumber(n)

			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			assert.Contains(t, err.Error(), "table number")
		}
	})
}
