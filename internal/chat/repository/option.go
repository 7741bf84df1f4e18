package repository

import "time"

// AddEventOptions holds parameters for scheduling a reminder event.
type AddEventOptions struct {
	UserID  int64
	Payload string
	DueAt   time.Time
}

// CreateCalendarEventOptions holds parameters for inserting a calendar
// entry.
type CreateCalendarEventOptions struct {
	UserID      int64
	Summary     string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

// ListCalendarEventsOptions holds the date window for listing calendar
// entries. Zero bounds are open.
type ListCalendarEventsOptions struct {
	UserID int64
	From   time.Time
	To     time.Time
}
