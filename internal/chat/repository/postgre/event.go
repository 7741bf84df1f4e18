package postgre

import (
	"context"
	"time"

	repo "pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
)

// AddEvent inserts a new pending scheduled event and returns it.
func (r *implRepository) AddEvent(ctx context.Context, opt repo.AddEventOptions) (model.ScheduledEvent, error) {
	const query = `
		INSERT INTO scheduled_events (user_id, payload, due_at, status, created_at)
		VALUES ($1, $2, $3, 'pending', NOW())
		RETURNING id, user_id, payload, due_at, status, created_at`

	var ev model.ScheduledEvent
	err := r.db.QueryRowContext(ctx, query, opt.UserID, opt.Payload, opt.DueAt.UTC()).Scan(
		&ev.ID, &ev.UserID, &ev.Payload, &ev.DueAt, &ev.Status, &ev.CreatedAt,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("AddEvent"), err)
		return model.ScheduledEvent{}, repo.ErrFailedToInsert
	}
	return ev, nil
}

// GetDueEvents returns pending events whose due_at has passed, oldest
// first so long backlogs drain in order.
func (r *implRepository) GetDueEvents(ctx context.Context, now time.Time) ([]model.ScheduledEvent, error) {
	const query = `
		SELECT id, user_id, payload, due_at, status, created_at
		FROM scheduled_events
		WHERE status = 'pending' AND due_at <= $1
		ORDER BY due_at ASC`

	rows, err := r.db.QueryContext(ctx, query, now.UTC())
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetDueEvents"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var events []model.ScheduledEvent
	for rows.Next() {
		var ev model.ScheduledEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Payload, &ev.DueAt, &ev.Status, &ev.CreatedAt); err != nil {
			return nil, repo.ErrFailedToList
		}
		events = append(events, ev)
	}
	return events, nil
}

// MarkDelivered flips an event to completed. Rows are kept, not
// deleted.
func (r *implRepository) MarkDelivered(ctx context.Context, id int64) error {
	const query = `UPDATE scheduled_events SET status = 'completed' WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MarkDelivered"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}
