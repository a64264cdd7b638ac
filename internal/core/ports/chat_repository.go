package ports

import (
	"context"

	"restaurant/internal/core/domain/model/chat"
)

type ChatRepository interface {
	Append(ctx context.Context, m *chat.Message) error

	// ListBySession returns the conversation oldest first.
	ListBySession(ctx context.Context, sessionID string) ([]*chat.Message, error)
}
