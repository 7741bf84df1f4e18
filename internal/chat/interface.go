package chat

import (
	"context"

	"pulse-assistant/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// Respond runs one conversation round: builds the bounded context,
	// calls the completion chain, dispatches any requested tools, and
	// returns the final sanitized reply.
	Respond(ctx context.Context, sc model.Scope, input RespondInput) (RespondOutput, error)

	// GenerateImage produces a PNG for the prompt, enhancing it through
	// the chat chain first when possible.
	GenerateImage(ctx context.Context, sc model.Scope, input ImageInput) (ImageOutput, error)

	// Synthesize converts text to speech audio.
	Synthesize(ctx context.Context, sc model.Scope, input VoiceInput) (VoiceOutput, error)

	// Settings
	SetChatModel(ctx context.Context, sc model.Scope, chatModel string) error
	SetImageModel(ctx context.Context, sc model.Scope, imageModel string) error
	SetPersona(ctx context.Context, sc model.Scope, persona string) error
	CurrentConfig(ctx context.Context, sc model.Scope) (ConfigOutput, error)

	// History & memory
	ClearHistory(ctx context.Context, sc model.Scope) error
	ListMemory(ctx context.Context, sc model.Scope) (MemoryOutput, error)
	ClearMemory(ctx context.Context, sc model.Scope) error
}
