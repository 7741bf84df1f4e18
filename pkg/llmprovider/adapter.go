package llmprovider

import (
	"context"

	"pulse-assistant/pkg/groq"
)

// GroqAdapter adapts pkg/groq to the llmprovider.Provider interface.
// Multiple adapters over the same client with different models form the
// chat fallback sequence (preferred model first, instant model last).
type GroqAdapter struct {
	client groq.IGroq
	model  string
}

// NewGroqAdapter creates a new Groq adapter pinned to the given model.
// An empty model falls back to the client's configured default.
func NewGroqAdapter(client groq.IGroq, model string) *GroqAdapter {
	if model == "" {
		model = client.Model()
	}
	return &GroqAdapter{client: client, model: model}
}

// GenerateContent implements the Provider interface.
func (a *GroqAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	model := req.Model
	if model == "" {
		model = a.model
	}

	groqReq := &groq.Request{
		Model:       model,
		Messages:    toGroqMessages(req.Messages),
		Tools:       toGroqTools(req.Tools),
		ToolChoice:  req.ToolChoice,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := a.client.GenerateContent(ctx, groqReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Message:      fromGroqMessage(resp.Message),
		ProviderName: a.Name(),
		ModelName:    model,
		Usage:        fromGroqUsage(resp.Usage),
	}, nil
}

// Name implements the Provider interface.
func (a *GroqAdapter) Name() string {
	return "groq"
}

// Model implements the Provider interface.
func (a *GroqAdapter) Model() string {
	return a.model
}

func toGroqMessages(messages []Message) []groq.Message {
	out := make([]groq.Message, 0, len(messages))
	for _, msg := range messages {
		gm := groq.Message{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			gm.ToolCalls = append(gm.ToolCalls, groq.ToolCall(call))
		}
		out = append(out, gm)
	}
	return out
}

func toGroqTools(tools []Tool) []groq.Tool {
	out := make([]groq.Tool, 0, len(tools))
	for _, tool := range tools {
		out = append(out, groq.Tool(tool))
	}
	return out
}

func fromGroqMessage(msg groq.Message) Message {
	out := Message{
		Role:       msg.Role,
		Content:    msg.Content,
		ToolCallID: msg.ToolCallID,
	}
	for _, call := range msg.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall(call))
	}
	return out
}

func fromGroqUsage(usage *groq.Usage) *Usage {
	if usage == nil {
		return &Usage{}
	}
	return &Usage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
}
