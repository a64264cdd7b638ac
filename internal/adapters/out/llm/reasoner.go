// Package llm adapts a langchaingo chat model to the assistant's Reasoner port.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/chat"
	"restaurant/internal/core/ports"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const systemPrompt = "You are the front-of-house assistant of a restaurant. " +
	"Use the tools to place requests and orders for the guest, never invent ids, " +
	"and answer briefly."

var ErrEmptyResponse = errors.New("model returned no choices")

type Config struct {
	Model   string
	Token   string
	BaseURL string
}

type Reasoner struct {
	model llms.Model
}

// NewOpenAIReasoner talks to any OpenAI compatible endpoint.
func NewOpenAIReasoner(cfg Config) (*Reasoner, error) {
	opts := []openai.Option{openai.WithModel(cfg.Model), openai.WithToken(cfg.Token)}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return NewReasoner(model), nil
}

// NewReasoner wraps any langchaingo model that supports tool calls.
func NewReasoner(model llms.Model) *Reasoner {
	return &Reasoner{model: model}
}

// Next sends the conversation and tool specs to the model and returns its reply or
// the tool calls it asks for.
func (r *Reasoner) Next(ctx context.Context, history []ports.Turn, tools []ports.ToolSpec) (ports.Reply, error) {
	resp, err := r.model.GenerateContent(ctx, messages(history), llms.WithTools(definitions(tools)))
	if err != nil {
		return ports.Reply{}, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return ports.Reply{}, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	reply := ports.Reply{Text: choice.Content}
	for _, tc := range choice.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		reply.ToolCalls = append(reply.ToolCalls, ports.ToolCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: json.RawMessage(tc.FunctionCall.Arguments),
		})
	}
	return reply, nil
}

func messages(history []ports.Turn) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(history)+1)
	out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))

	for _, turn := range history {
		switch turn.Author {
		case chat.AuthorUser:
			out = append(out, llms.TextParts(llms.ChatMessageTypeHuman, turn.Content))
		case chat.AuthorAssistant:
			msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
			if turn.Content != "" {
				msg.Parts = append(msg.Parts, llms.TextContent{Text: turn.Content})
			}
			for _, call := range turn.ToolCalls {
				msg.Parts = append(msg.Parts, llms.ToolCall{
					ID:   call.ID,
					Type: "function",
					FunctionCall: &llms.FunctionCall{
						Name:      call.Name,
						Arguments: string(call.Arguments),
					},
				})
			}
			out = append(out, msg)
		case chat.AuthorTool:
			// Replayed results have no call to answer and go in as context.
			if turn.ToolCallID == "" {
				out = append(out, llms.TextParts(llms.ChatMessageTypeSystem,
					fmt.Sprintf("Earlier result of %s: %s", turn.ToolName, turn.Content)))
				continue
			}
			out = append(out, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: turn.ToolCallID,
					Name:       turn.ToolName,
					Content:    turn.Content,
				}},
			})
		}
	}
	return out
}

func definitions(tools []ports.ToolSpec) []llms.Tool {
	out := make([]llms.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}
