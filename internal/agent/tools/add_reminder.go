package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/datemath"
	pkgLog "pulse-assistant/pkg/log"
)

// AddReminderTool schedules a one-shot reminder for later delivery.
type AddReminderTool struct {
	repo     repository.EventRepository
	dateMath *datemath.Parser
	l        pkgLog.Logger
	now      func() time.Time
}

// NewAddReminderTool creates a new reminder tool.
func NewAddReminderTool(repo repository.EventRepository, dateMath *datemath.Parser, l pkgLog.Logger) agent.Tool {
	return &AddReminderTool{repo: repo, dateMath: dateMath, l: l, now: time.Now}
}

func (t *AddReminderTool) Name() string {
	return "add_reminder"
}

func (t *AddReminderTool) Description() string {
	return "Schedule a reminder to be sent to the user later. Supported time forms: \"in 15 minutes\", \"in 2 hours\", \"at 18:30\", \"tomorrow at 09:00\", \"next friday at 10:00\"."
}

func (t *AddReminderTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Reminder text delivered verbatim",
			},
			"time_str": map[string]interface{}{
				"type":        "string",
				"description": "When to deliver, e.g. \"in 30 minutes\" or \"tomorrow at 09:00\"",
			},
		},
		"required": []string{"text", "time_str"},
	}
}

// AddReminderInput mirrors the Parameters schema.
type AddReminderInput struct {
	Text    string `json:"text"`
	TimeStr string `json:"time_str"`
}

func (t *AddReminderTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var input AddReminderInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if input.Text == "" || input.TimeStr == "" {
		return nil, fmt.Errorf("text and time_str parameters are required")
	}

	dueAt, err := t.dateMath.Parse(input.TimeStr, t.now())
	if err != nil {
		return nil, fmt.Errorf("cannot understand time %q: %w", input.TimeStr, err)
	}

	ev, err := t.repo.AddEvent(ctx, repository.AddEventOptions{
		UserID:  sc.UserID,
		Payload: input.Text,
		DueAt:   dueAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule reminder: %w", err)
	}

	t.l.Infof(ctx, "add_reminder: user %d event %d due %s", sc.UserID, ev.ID, dueAt.Format(time.RFC3339))
	return fmt.Sprintf("Reminder saved for %s: %s", dueAt.Format("Mon, 2 Jan 15:04"), input.Text), nil
}

// Verify interface compliance
var _ agent.Tool = (*AddReminderTool)(nil)
