package tools

import (
	"context"
	"fmt"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
)

// SaveMemoryTool persists a long-lived fact about the user. Facts are
// injected into the system turn of every future round.
type SaveMemoryTool struct {
	repo repository.MemoryRepository
	l    pkgLog.Logger
}

// NewSaveMemoryTool creates a new memory tool.
func NewSaveMemoryTool(repo repository.MemoryRepository, l pkgLog.Logger) agent.Tool {
	return &SaveMemoryTool{repo: repo, l: l}
}

func (t *SaveMemoryTool) Name() string {
	return "save_memory"
}

func (t *SaveMemoryTool) Description() string {
	return "Save a durable fact about the user (name, preferences, important dates). Use when the user shares something worth remembering across conversations."
}

func (t *SaveMemoryTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"content": map[string]interface{}{
				"type":        "string",
				"description": "The fact to remember, one short sentence",
			},
		},
		"required": []string{"content"},
	}
}

func (t *SaveMemoryTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	content, ok := params["content"].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("content parameter is required")
	}

	if err := t.repo.AddMemoryFact(ctx, sc.UserID, content); err != nil {
		return nil, fmt.Errorf("failed to save memory: %w", err)
	}

	t.l.Infof(ctx, "save_memory: user %d saved a fact", sc.UserID)
	return "Remembered: " + content, nil
}

// Verify interface compliance
var _ agent.Tool = (*SaveMemoryTool)(nil)
