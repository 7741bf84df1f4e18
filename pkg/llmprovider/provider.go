package llmprovider

import "context"

// Provider defines the interface for chat completion providers.
type Provider interface {
	// GenerateContent sends a completion request and returns a response.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g. "groq").
	Name() string

	// Model returns the model this provider instance targets.
	Model() string
}

// Request represents a normalized chat completion request.
// Model, when set, overrides the primary provider's model for this call;
// fallback providers keep their own configured models.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []Tool
	ToolChoice  string
	Temperature float64
	MaxTokens   int
}

// Message represents one conversation message.
type Message struct {
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
}

// Tool represents a function declaration exposed to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON Schema
}

// ToolCall is a model-issued request to execute a named tool.
// Arguments is the raw JSON string exactly as the model produced it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Response represents a normalized chat completion response.
type Response struct {
	Message      Message
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
