package ports

import (
	"context"
	"encoding/json"

	"restaurant/internal/core/domain/model/chat"

	"github.com/getkin/kin-openapi/openapi3"
)

// ToolSpec describes one capability the assistant may call. Parameters is the JSON
// schema of the call arguments.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  *openapi3.Schema
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Turn is one entry of the conversation handed to a Reasoner. A tool turn answers the
// call with ToolCallID; replayed history has no call ids.
type Turn struct {
	Author     chat.Author
	Content    string
	ToolName   string
	ToolCallID string
	ToolCalls  []ToolCall
}

// Reply is either text for the user or a set of tool calls to run before asking again.
type Reply struct {
	Text      string
	ToolCalls []ToolCall
}

type Reasoner interface {
	Next(ctx context.Context, history []Turn, tools []ToolSpec) (Reply, error)
}
