// Package chat stores the assistant conversation of a table session.
package chat

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
	AuthorTool      Author = "tool"
)

// Validate rejects authors other than user, assistant and tool.
func (a Author) Validate() error {
	switch a {
	case AuthorUser, AuthorAssistant, AuthorTool:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("author", fmt.Errorf("%q is not a chat author", string(a)))
	}
}

// Message is one turn of a session's conversation. ToolName is set for tool results
// and for assistant turns that requested a tool call.
type Message struct {
	id        kernel.UUID
	sessionID string
	author    Author
	content   string
	toolName  string
	createdAt time.Time
}

// NewMessage creates a chat message. toolName is only set for tool results.
func NewMessage(id kernel.UUID, sessionID string, author Author, content, toolName string, createdAt time.Time) (*Message, error) {
	var sessionErr error
	if strings.TrimSpace(sessionID) == "" {
		sessionErr = errs.NewValueIsRequiredError("session id")
	}
	var toolErr error
	if author == AuthorTool && toolName == "" {
		toolErr = errs.NewValueIsRequiredError("tool name")
	}

	if err := errors.Join(id.Validate(), sessionErr, author.Validate(), toolErr); err != nil {
		return nil, err
	}

	return &Message{
		id:        id,
		sessionID: sessionID,
		author:    author,
		content:   content,
		toolName:  toolName,
		createdAt: createdAt,
	}, nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID { return m.id }

// SessionID returns the conversation the message belongs to.
func (m *Message) SessionID() string { return m.sessionID }

// Author returns who wrote the message.
func (m *Message) Author() Author { return m.author }

// Content returns the message text.
func (m *Message) Content() string { return m.content }

// ToolName returns the tool that produced a tool message.
func (m *Message) ToolName() string { return m.toolName }

// CreatedAt returns when the message was stored.
func (m *Message) CreatedAt() time.Time { return m.createdAt }
