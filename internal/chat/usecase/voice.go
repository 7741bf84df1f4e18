package usecase

import (
	"context"
	"fmt"
	"strings"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/model"
)

// Synthesize converts text to speech through the inference client.
func (uc *implUseCase) Synthesize(ctx context.Context, sc model.Scope, input chat.VoiceInput) (chat.VoiceOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return chat.VoiceOutput{}, chat.ErrEmptyText
	}

	audio, err := uc.inference.Synthesize(ctx, uc.cfg.VoiceModel, text)
	if err != nil {
		return chat.VoiceOutput{}, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return chat.VoiceOutput{Audio: audio}, nil
}
