package model

import "time"

// EventStatus tracks a scheduled event through its lifecycle.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusDelivered EventStatus = "completed"
)

// ScheduledEvent is a one-shot reminder stored for later delivery. An
// event stays pending until the scheduler has actually handed its
// payload to the delivery sink, so a failed delivery is retried on the
// next tick (at-least-once).
type ScheduledEvent struct {
	ID        int64
	UserID    int64       // Telegram user ID the reminder is delivered to
	Payload   string      // Reminder text, sent verbatim
	DueAt     time.Time   // UTC instant the event becomes due
	Status    EventStatus // pending until delivery succeeds
	CreatedAt time.Time
}

// CalendarEvent is a dated entry in a user's personal calendar. Unlike
// a ScheduledEvent it is never delivered; it exists to be listed back
// when the user asks about their schedule.
type CalendarEvent struct {
	ID          int64
	UserID      int64
	Summary     string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}
