package groq

import "time"

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API root.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is used when no model is configured or selected.
	DefaultModel = "llama-3.3-70b-versatile"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 90 * time.Second
)
