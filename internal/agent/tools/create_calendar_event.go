package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
)

// CreateCalendarEventTool inserts an entry into the user's calendar.
type CreateCalendarEventTool struct {
	repo     repository.CalendarRepository
	location *time.Location
	l        pkgLog.Logger
}

// NewCreateCalendarEventTool creates a new calendar insertion tool.
func NewCreateCalendarEventTool(repo repository.CalendarRepository, location *time.Location, l pkgLog.Logger) agent.Tool {
	return &CreateCalendarEventTool{repo: repo, location: location, l: l}
}

func (t *CreateCalendarEventTool) Name() string {
	return "create_calendar_event"
}

func (t *CreateCalendarEventTool) Description() string {
	return "Create an event in the user's calendar. When end_time is omitted the event lasts one hour."
}

func (t *CreateCalendarEventTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"summary": map[string]interface{}{
				"type":        "string",
				"description": "Event title",
			},
			"start_time": map[string]interface{}{
				"type":        "string",
				"description": "Start in \"YYYY-MM-DD HH:MM\" format",
			},
			"end_time": map[string]interface{}{
				"type":        "string",
				"description": "End in \"YYYY-MM-DD HH:MM\" format (optional, default start + 1 hour)",
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Optional details",
			},
		},
		"required": []string{"summary", "start_time"},
	}
}

// CreateCalendarEventInput mirrors the Parameters schema.
type CreateCalendarEventInput struct {
	Summary     string `json:"summary"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Description string `json:"description"`
}

func (t *CreateCalendarEventTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var input CreateCalendarEventInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if input.Summary == "" || input.StartTime == "" {
		return nil, fmt.Errorf("summary and start_time parameters are required")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", input.StartTime, t.location)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time format, want \"YYYY-MM-DD HH:MM\": %w", err)
	}

	end := start.Add(time.Hour)
	if input.EndTime != "" {
		end, err = time.ParseInLocation("2006-01-02 15:04", input.EndTime, t.location)
		if err != nil {
			return nil, fmt.Errorf("invalid end_time format, want \"YYYY-MM-DD HH:MM\": %w", err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("end_time must be after start_time")
		}
	}

	ev, err := t.repo.CreateCalendarEvent(ctx, repository.CreateCalendarEventOptions{
		UserID:      sc.UserID,
		Summary:     input.Summary,
		Description: input.Description,
		StartAt:     start,
		EndAt:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	t.l.Infof(ctx, "create_calendar_event: user %d event %d", sc.UserID, ev.ID)
	return fmt.Sprintf("Event %q created for %s.", ev.Summary, start.Format("Mon, 2 Jan 15:04")), nil
}

// Verify interface compliance
var _ agent.Tool = (*CreateCalendarEventTool)(nil)
