package scheduler

import (
	"context"
	"time"

	"pulse-assistant/internal/chat/repository"
	pkgLog "pulse-assistant/pkg/log"
)

// Sink receives the payload of a due event. The Telegram bot is the
// production sink.
type Sink interface {
	Deliver(ctx context.Context, userID int64, payload string) error
}

// Config holds poller settings.
type Config struct {
	Interval    time.Duration // tick period, default 60s
	SinkTimeout time.Duration // per-delivery timeout, default 30s
}

// Scheduler polls the event store and delivers due reminders.
type Scheduler struct {
	repo repository.EventRepository
	sink Sink
	l    pkgLog.Logger
	cfg  Config
	now  func() time.Time
}

// New creates a new reminder scheduler.
func New(repo repository.EventRepository, sink Sink, l pkgLog.Logger, cfg Config) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.SinkTimeout <= 0 {
		cfg.SinkTimeout = 30 * time.Second
	}
	return &Scheduler{
		repo: repo,
		sink: sink,
		l:    l,
		cfg:  cfg,
		now:  time.Now,
	}
}
