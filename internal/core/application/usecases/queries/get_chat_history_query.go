package queries

import (
	"context"
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrGetChatHistoryQueryIsNotConstructed = errors.New(
	"GetChatHistoryQuery must be created via NewGetChatHistoryQuery constructor",
)

type GetChatHistoryQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

// NewGetChatHistoryQuery creates a query for the conversation of sessionID.
func NewGetChatHistoryQuery(sessionID string) (GetChatHistoryQuery, error) {
	if strings.TrimSpace(sessionID) == "" {
		return GetChatHistoryQuery{}, errs.NewValueIsRequiredError("session id")
	}
	return GetChatHistoryQuery{sessionID: sessionID, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the query was built by NewGetChatHistoryQuery.
func (q GetChatHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetChatHistoryQueryIsNotConstructed)
}

type GetChatHistoryQueryHandler struct {
	uowFactory UoWFactory
}

// NewGetChatHistoryQueryHandler creates the handler.
func NewGetChatHistoryQueryHandler(uowFactory UoWFactory) GetChatHistoryQueryHandler {
	return GetChatHistoryQueryHandler{uowFactory: uowFactory}
}

// Handle returns the session messages, oldest first.
func (h GetChatHistoryQueryHandler) Handle(ctx context.Context, q GetChatHistoryQuery) ([]*chat.Message, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.uowFactory.Create().ChatRepository().ListBySession(ctx, q.sessionID)
}
