package chat_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	at := time.Now()

	m, err := chat.NewMessage(kernel.NewUUID(), "session-1", chat.AuthorUser, "two waters please", "", at)
	require.NoError(t, err)
	assert.Equal(t, chat.AuthorUser, m.Author())
	assert.Equal(t, "two waters please", m.Content())

	_, err = chat.NewMessage(kernel.NewUUID(), "session-1", chat.AuthorTool, "{}", "", at)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = chat.NewMessage(kernel.NewUUID(), "", chat.Author("system"), "", "", at)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
