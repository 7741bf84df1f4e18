package repository

import (
	"context"
	"time"

	"pulse-assistant/internal/model"
)

// Repository is the composed interface for the chat domain data store.
type Repository interface {
	SessionRepository
	EventRepository
	MemoryRepository
	CalendarRepository
}

// SessionRepository defines data access for per-user conversation state.
type SessionRepository interface {
	// GetSession returns the session for a user. Not-found is not an
	// error: the zero-value Session (empty history) is returned.
	GetSession(ctx context.Context, userID int64) (model.Session, error)

	// SaveHistory replaces the stored conversation window, creating the
	// session row when it does not exist yet.
	SaveHistory(ctx context.Context, userID int64, history []model.Turn) error

	// ClearHistory empties the conversation window, leaving model and
	// persona settings untouched.
	ClearHistory(ctx context.Context, userID int64) error

	SetChatModel(ctx context.Context, userID int64, chatModel string) error
	SetImageModel(ctx context.Context, userID int64, imageModel string) error
	SetPersona(ctx context.Context, userID int64, persona string) error
}

// EventRepository defines data access for scheduled reminder events.
type EventRepository interface {
	AddEvent(ctx context.Context, opt AddEventOptions) (model.ScheduledEvent, error)

	// GetDueEvents returns pending events with due_at <= now.
	GetDueEvents(ctx context.Context, now time.Time) ([]model.ScheduledEvent, error)

	// MarkDelivered flips an event to completed. Events are never
	// deleted, so delivery history stays queryable.
	MarkDelivered(ctx context.Context, id int64) error
}

// MemoryRepository defines data access for long-lived user facts.
type MemoryRepository interface {
	AddMemoryFact(ctx context.Context, userID int64, content string) error
	GetMemoryFacts(ctx context.Context, userID int64) ([]model.MemoryFact, error)
	ClearMemory(ctx context.Context, userID int64) error
}

// CalendarRepository defines data access for personal calendar entries.
type CalendarRepository interface {
	CreateCalendarEvent(ctx context.Context, opt CreateCalendarEventOptions) (model.CalendarEvent, error)
	ListCalendarEvents(ctx context.Context, opt ListCalendarEventsOptions) ([]model.CalendarEvent, error)
}
