// Package assistant lets a customer or waiter drive the service in natural language.
// A Reasoner decides which of the fixed tools to call; the tools run the same use cases
// as the HTTP API, so every change goes through the status transition rules.
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// MaxSteps bounds the reasoner round trips of one Chat call.
const MaxSteps = 5

const stepLimitReply = "Sorry, I could not finish that. Please ask a member of staff."

var ErrAssistantIsNotConfigured = errors.New("assistant has no reasoner configured")

// ChatUoWFactory gives access to the chat history.
type ChatUoWFactory interface {
	Create() ports.UnitOfWork
}

type Assistant struct {
	reasoner   ports.Reasoner
	toolbox    *Toolbox
	uowFactory ChatUoWFactory
	now        services.Clock
	logger     *slog.Logger
}

// NewAssistant creates an assistant. A nil reasoner makes Chat return
// ErrAssistantIsNotConfigured.
func NewAssistant(
	reasoner ports.Reasoner,
	toolbox *Toolbox,
	uowFactory ChatUoWFactory,
	engine services.StatusTransitionEngine,
	logger *slog.Logger,
) *Assistant {
	return &Assistant{
		reasoner:   reasoner,
		toolbox:    toolbox,
		uowFactory: uowFactory,
		now:        engine.Now,
		logger:     logger.With("component", "Assistant"),
	}
}

// Chat stores the user's message, runs the reasoner and the tools it asks for, and
// returns the final reply. Every turn, tool calls and results included, is kept in the
// session's history.
func (a *Assistant) Chat(ctx context.Context, sessionID string, role kernel.Role, text string) (*chat.Message, error) {
	if a.reasoner == nil {
		return nil, ErrAssistantIsNotConfigured
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, errs.NewValueIsRequiredError("session id")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	repo := a.uowFactory.Create().ChatRepository()

	if _, err := a.append(ctx, repo, sessionID, chat.AuthorUser, text, ""); err != nil {
		return nil, err
	}

	stored, err := repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history := replay(stored)

	c := caller{sessionID: sessionID, role: role}
	specs := a.toolbox.Specs()

	for step := 0; step < MaxSteps; step++ {
		reply, nextErr := a.reasoner.Next(ctx, history, specs)
		if nextErr != nil {
			return nil, nextErr
		}
		if len(reply.ToolCalls) == 0 {
			return a.append(ctx, repo, sessionID, chat.AuthorAssistant, reply.Text, "")
		}

		history = append(history, ports.Turn{Author: chat.AuthorAssistant, Content: reply.Text, ToolCalls: reply.ToolCalls})
		for _, call := range reply.ToolCalls {
			if _, err = a.append(ctx, repo, sessionID, chat.AuthorAssistant, string(call.Arguments), call.Name); err != nil {
				return nil, err
			}

			result := a.toolbox.Run(ctx, c, call)
			a.logger.InfoContext(ctx, "tool executed", "session", sessionID, "tool", call.Name)

			if _, err = a.append(ctx, repo, sessionID, chat.AuthorTool, result, call.Name); err != nil {
				return nil, err
			}
			history = append(history, ports.Turn{
				Author:     chat.AuthorTool,
				Content:    result,
				ToolName:   call.Name,
				ToolCallID: call.ID,
			})
		}
	}

	a.logger.WarnContext(ctx, "assistant step limit reached", "session", sessionID, "steps", MaxSteps)
	return a.append(ctx, repo, sessionID, chat.AuthorAssistant, stepLimitReply, "")
}

func (a *Assistant) append(
	ctx context.Context,
	repo ports.ChatRepository,
	sessionID string,
	author chat.Author,
	content, toolName string,
) (*chat.Message, error) {
	m, err := chat.NewMessage(kernel.NewUUID(), sessionID, author, content, toolName, a.now())
	if err != nil {
		return nil, err
	}
	if err = repo.Append(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// replay turns stored history into reasoner turns. Stored tool requests carry no call
// ids, so earlier tool activity is replayed as plain tool results only.
func replay(messages []*chat.Message) []ports.Turn {
	turns := make([]ports.Turn, 0, len(messages))
	for _, m := range messages {
		if m.Author() == chat.AuthorAssistant && m.ToolName() != "" {
			continue
		}
		turns = append(turns, ports.Turn{Author: m.Author(), Content: m.Content(), ToolName: m.ToolName()})
	}
	return turns
}
