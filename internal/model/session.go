package model

// Turn roles mirror the chat completion wire format so history can be
// replayed to the provider without translation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is one tool invocation requested by the model within a turn.
// Arguments is kept as the raw JSON string the model produced.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Turn is a single entry in a conversation history.
type Turn struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Session is the persisted conversation state for one user. History is
// stored as a JSONB document; the system turn, when present, is always
// History[0].
type Session struct {
	UserID     int64  // Telegram user ID, primary key
	History    []Turn // Bounded conversation window
	ChatModel  string // Preferred chat model ("" means provider default)
	ImageModel string // Preferred image model ("" means provider default)
	Persona    string // Active persona key ("" means default)
}

// MemoryFact is one long-lived fact saved about a user, injected into
// the system turn on every round.
type MemoryFact struct {
	ID      int64
	UserID  int64
	Content string
}
