package usecase

import (
	"context"
	"fmt"
	"strings"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/model"
)

// SetChatModel stores the user's preferred chat model. An empty value
// resets to the provider chain default.
func (uc *implUseCase) SetChatModel(ctx context.Context, sc model.Scope, chatModel string) error {
	return uc.repo.SetChatModel(ctx, sc.UserID, strings.TrimSpace(chatModel))
}

// SetImageModel stores the user's preferred image model. An empty value
// resets to the default.
func (uc *implUseCase) SetImageModel(ctx context.Context, sc model.Scope, imageModel string) error {
	return uc.repo.SetImageModel(ctx, sc.UserID, strings.TrimSpace(imageModel))
}

// SetPersona stores the active persona for the user.
func (uc *implUseCase) SetPersona(ctx context.Context, sc model.Scope, persona string) error {
	persona = strings.TrimSpace(strings.ToLower(persona))
	if _, ok := personaTemplates[persona]; !ok {
		return fmt.Errorf("unknown persona %q, available: %s", persona, strings.Join(Personas(), ", "))
	}
	return uc.repo.SetPersona(ctx, sc.UserID, persona)
}

// CurrentConfig reports the settings in effect, with defaults filled in
// for anything the user has not overridden.
func (uc *implUseCase) CurrentConfig(ctx context.Context, sc model.Scope) (chat.ConfigOutput, error) {
	session, err := uc.repo.GetSession(ctx, sc.UserID)
	if err != nil {
		return chat.ConfigOutput{}, err
	}

	out := chat.ConfigOutput{
		ChatModel:  session.ChatModel,
		ImageModel: session.ImageModel,
		Persona:    session.Persona,
	}
	if out.ChatModel == "" {
		out.ChatModel = "default"
	}
	if out.ImageModel == "" {
		out.ImageModel = uc.cfg.DefaultImageModel
	}
	if out.Persona == "" {
		out.Persona = uc.cfg.DefaultPersona
	}
	return out, nil
}

// ClearHistory empties the conversation window. Memory facts and model
// settings are untouched.
func (uc *implUseCase) ClearHistory(ctx context.Context, sc model.Scope) error {
	unlock := uc.locks.lock(sc.UserID)
	defer unlock()
	return uc.repo.ClearHistory(ctx, sc.UserID)
}

// ListMemory returns the saved facts for the user.
func (uc *implUseCase) ListMemory(ctx context.Context, sc model.Scope) (chat.MemoryOutput, error) {
	facts, err := uc.repo.GetMemoryFacts(ctx, sc.UserID)
	if err != nil {
		return chat.MemoryOutput{}, err
	}
	return chat.MemoryOutput{Facts: facts}, nil
}

// ClearMemory removes every saved fact. Conversation history is
// untouched.
func (uc *implUseCase) ClearMemory(ctx context.Context, sc model.Scope) error {
	return uc.repo.ClearMemory(ctx, sc.UserID)
}
