package postgre

import (
	"context"
	"fmt"
	"strings"

	repo "pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
)

// CreateCalendarEvent inserts a calendar entry and returns it.
func (r *implRepository) CreateCalendarEvent(ctx context.Context, opt repo.CreateCalendarEventOptions) (model.CalendarEvent, error) {
	const query = `
		INSERT INTO calendar_events (user_id, summary, description, start_at, end_at, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, user_id, summary, description, start_at, end_at, created_at`

	var ev model.CalendarEvent
	err := r.db.QueryRowContext(ctx, query,
		opt.UserID, opt.Summary, opt.Description, opt.StartAt.UTC(), opt.EndAt.UTC(),
	).Scan(&ev.ID, &ev.UserID, &ev.Summary, &ev.Description, &ev.StartAt, &ev.EndAt, &ev.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateCalendarEvent"), err)
		return model.CalendarEvent{}, repo.ErrFailedToInsert
	}
	return ev, nil
}

// ListCalendarEvents returns the user's entries inside the window,
// soonest first. Zero bounds are open.
func (r *implRepository) ListCalendarEvents(ctx context.Context, opt repo.ListCalendarEventsOptions) ([]model.CalendarEvent, error) {
	conditions := []string{"user_id = $1"}
	args := []any{opt.UserID}
	idx := 2

	if !opt.From.IsZero() {
		conditions = append(conditions, fmt.Sprintf("start_at >= $%d", idx))
		args = append(args, opt.From.UTC())
		idx++
	}
	if !opt.To.IsZero() {
		conditions = append(conditions, fmt.Sprintf("start_at <= $%d", idx))
		args = append(args, opt.To.UTC())
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, summary, description, start_at, end_at, created_at
		FROM calendar_events
		WHERE %s
		ORDER BY start_at ASC`, strings.Join(conditions, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListCalendarEvents"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		var ev model.CalendarEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Summary, &ev.Description, &ev.StartAt, &ev.EndAt, &ev.CreatedAt); err != nil {
			return nil, repo.ErrFailedToList
		}
		events = append(events, ev)
	}
	return events, nil
}
