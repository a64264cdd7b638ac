package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateRequestCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewCreateRequestCommand(id, " session-1 ", 5, " more water ")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.RequestID())
	assert.Equal(t, "session-1", cmd.OwnerID())
	assert.Equal(t, kernel.TableNumber(5), cmd.TableNumber())
	assert.Equal(t, "more water", cmd.Content())
}

func TestNewCreateRequestCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateRequestCommand(kernel.UUID{}, "", 0, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateRequestCommand_NotConstructed(t *testing.T) {
	cmd := commands.CreateRequestCommand{}

	assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateRequestCommandIsNotConstructed)
}
