package chat

import "pulse-assistant/internal/model"

// RespondInput is one user message entering the orchestrator.
type RespondInput struct {
	Text string
}

// RespondOutput is the final assistant reply for a round.
type RespondOutput struct {
	Reply string
	Model string // model that produced the final completion
}

// ImageInput is a prompt for image generation.
type ImageInput struct {
	Prompt string
}

// ImageOutput carries the generated PNG and the prompt that actually
// reached the image model (it may have been enhanced).
type ImageOutput struct {
	PNG    []byte
	Prompt string
}

// VoiceInput is text for speech synthesis.
type VoiceInput struct {
	Text string
}

// VoiceOutput carries the synthesized audio payload.
type VoiceOutput struct {
	Audio []byte
}

// ConfigOutput reports the per-user settings currently in effect.
type ConfigOutput struct {
	ChatModel  string
	ImageModel string
	Persona    string
}

// MemoryOutput lists the saved memory facts for a user.
type MemoryOutput struct {
	Facts []model.MemoryFact
}
