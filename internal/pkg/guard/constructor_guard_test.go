package guard_test

import (
	"errors"
	"sync"
	"testing"

	"restaurant/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTicketNotConstructed = errors.New("ticket must be created via newTicket")

type ticket struct {
	table int
	guard guard.ConstructorGuard
}

func newTicket(table int) ticket {
	return ticket{table: table, guard: guard.NewConstructorGuard()}
}

func (t ticket) Validate() error {
	return t.guard.Validate(errTicketNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with custom and nil errors", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	t.Run("value built by constructor is valid", func(t *testing.T) {
		tk := newTicket(4)

		require.NoError(t, tk.Validate())
		assert.Equal(t, 4, tk.table)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		tk := ticket{table: 4}

		assert.ErrorIs(t, tk.Validate(), errTicketNotConstructed)
	})

	t.Run("copies keep the constructed flag", func(t *testing.T) {
		original := newTicket(2)
		copied := original

		require.NoError(t, copied.Validate())
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	var wg sync.WaitGroup

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}

	wg.Wait()
}
