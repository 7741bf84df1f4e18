package usecase

import (
	"context"
	"strings"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/fallback"
	"pulse-assistant/pkg/llmprovider"
)

const enhanceInstruction = "Rewrite the user's request as a single vivid English prompt " +
	"for an image generation model. Add style, lighting and composition details. " +
	"Reply with the prompt text only."

// GenerateImage produces a PNG for the prompt. The prompt is first
// enhanced through the chat chain (best effort: on failure the original
// prompt is used), then the image request runs through the fallback
// chain over the user's preferred model and the default model.
func (uc *implUseCase) GenerateImage(ctx context.Context, sc model.Scope, input chat.ImageInput) (chat.ImageOutput, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return chat.ImageOutput{}, chat.ErrEmptyPrompt
	}

	session, err := uc.repo.GetSession(ctx, sc.UserID)
	if err != nil {
		uc.l.Warnf(ctx, "chat: session load failed for user %d, using defaults: %v", sc.UserID, err)
		session = model.Session{UserID: sc.UserID}
	}

	prompt = uc.enhancePrompt(ctx, prompt)

	models := []string{uc.cfg.DefaultImageModel}
	if session.ImageModel != "" && session.ImageModel != uc.cfg.DefaultImageModel {
		models = []string{session.ImageModel, uc.cfg.DefaultImageModel}
	}

	units := make([]fallback.Unit[[]byte], 0, len(models))
	for _, m := range models {
		m := m
		units = append(units, fallback.Unit[[]byte]{
			Name:  "hf-image",
			Model: m,
			Do: func(ctx context.Context) ([]byte, error) {
				return uc.inference.GenerateImage(ctx, m, prompt)
			},
		})
	}

	png, err := fallback.Run(ctx, uc.cfg.MediaFallback, uc.l, units)
	if err != nil {
		return chat.ImageOutput{}, err
	}

	return chat.ImageOutput{PNG: png, Prompt: prompt}, nil
}

// enhancePrompt asks the chat chain to improve an image prompt. Any
// failure keeps the original prompt.
func (uc *implUseCase) enhancePrompt(ctx context.Context, prompt string) string {
	resp, err := uc.manager.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{Role: model.RoleSystem, Content: enhanceInstruction},
			{Role: model.RoleUser, Content: prompt},
		},
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		uc.l.Warnf(ctx, "chat: prompt enhancement failed, keeping original: %v", err)
		return prompt
	}

	enhanced := sanitize(resp.Message.Content)
	if enhanced == "" {
		return prompt
	}
	return enhanced
}
