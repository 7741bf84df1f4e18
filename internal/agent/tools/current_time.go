package tools

import (
	"context"
	"fmt"
	"time"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/model"
)

// CurrentTimeTool reports the current date and time in the configured
// timezone. Pure: no parameters, no side effects.
type CurrentTimeTool struct {
	location *time.Location
	now      func() time.Time
}

// NewCurrentTimeTool creates a new current time tool.
func NewCurrentTimeTool(location *time.Location) agent.Tool {
	return &CurrentTimeTool{location: location, now: time.Now}
}

func (t *CurrentTimeTool) Name() string {
	return "get_current_time"
}

func (t *CurrentTimeTool) Description() string {
	return "Get the current date and time. Use when the user asks what time or day it is, or when another answer depends on the current moment."
}

func (t *CurrentTimeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *CurrentTimeTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	now := t.now().In(t.location)
	return fmt.Sprintf("%s (%s)", now.Format("Monday, 2 January 2006, 15:04"), t.location.String()), nil
}

// Verify interface compliance
var _ agent.Tool = (*CurrentTimeTool)(nil)
