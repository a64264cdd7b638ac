package http

import (
	"net/http"
	"strings"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// SendChatMessage handles POST /api/v1/assistant/{sessionId}/messages.
func (s *Server) SendChatMessage(ctx echo.Context, sessionId string, params servers.SendChatMessageParams) error {
	var body servers.NewChatMessage
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return badRequest(ctx, "text is required")
	}

	reply, err := s.assistant.Chat(ctx.Request().Context(), sessionId, actorRole(params.XActorRole), body.Text)
	if err != nil {
		return s.fail(ctx, err, "Assistant failed to answer")
	}
	return ctx.JSON(http.StatusOK, toChatMessage(reply))
}

// GetChatHistory handles GET /api/v1/assistant/{sessionId}/messages.
func (s *Server) GetChatHistory(ctx echo.Context, sessionId string) error {
	query, err := queries.NewGetChatHistoryQuery(sessionId)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	messages, err := s.handlers.GetChatHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve chat history")
	}

	response := make([]servers.ChatMessage, len(messages))
	for i, m := range messages {
		response[i] = toChatMessage(m)
	}
	return ctx.JSON(http.StatusOK, response)
}
