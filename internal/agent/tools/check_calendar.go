package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
)

// CheckCalendarTool lists the user's calendar entries in a date window.
type CheckCalendarTool struct {
	repo     repository.CalendarRepository
	location *time.Location
	l        pkgLog.Logger
}

// NewCheckCalendarTool creates a new calendar listing tool.
func NewCheckCalendarTool(repo repository.CalendarRepository, location *time.Location, l pkgLog.Logger) agent.Tool {
	return &CheckCalendarTool{repo: repo, location: location, l: l}
}

func (t *CheckCalendarTool) Name() string {
	return "check_calendar"
}

func (t *CheckCalendarTool) Description() string {
	return "List the user's calendar events in a date range. Useful for answering what is planned or detecting conflicts."
}

func (t *CheckCalendarTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"start_date": map[string]interface{}{
				"type":        "string",
				"description": "Start date in YYYY-MM-DD format",
			},
			"end_date": map[string]interface{}{
				"type":        "string",
				"description": "End date in YYYY-MM-DD format",
			},
		},
		"required": []string{"start_date", "end_date"},
	}
}

// CheckCalendarInput mirrors the Parameters schema.
type CheckCalendarInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (t *CheckCalendarTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var input CheckCalendarInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}

	start, err := time.ParseInLocation("2006-01-02", input.StartDate, t.location)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date format: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", input.EndDate, t.location)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date format: %w", err)
	}
	end = end.Add(24*time.Hour - time.Second)

	events, err := t.repo.ListCalendarEvents(ctx, repository.ListCalendarEventsOptions{
		UserID: sc.UserID,
		From:   start,
		To:     end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar: %w", err)
	}

	if len(events) == 0 {
		return fmt.Sprintf("No events between %s and %s.", input.StartDate, input.EndDate), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d event(s) between %s and %s:\n", len(events), input.StartDate, input.EndDate)
	for i, ev := range events {
		fmt.Fprintf(&b, "%d. %s (%s - %s)",
			i+1, ev.Summary,
			ev.StartAt.In(t.location).Format("02.01 15:04"),
			ev.EndAt.In(t.location).Format("15:04"))
		if ev.Description != "" {
			fmt.Fprintf(&b, " — %s", ev.Description)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Verify interface compliance
var _ agent.Tool = (*CheckCalendarTool)(nil)
