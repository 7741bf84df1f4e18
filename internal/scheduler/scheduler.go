package scheduler

import (
	"context"
	"time"
)

// Run polls until ctx is cancelled. Blocking; start it in its own
// goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	s.l.Infof(ctx, "scheduler: started, interval %s", s.cfg.Interval)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Infof(ctx, "scheduler: stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick processes every currently due event once. An event is marked
// delivered only after the sink accepted it, so a failed delivery is
// retried on the next tick (at-least-once).
func (s *Scheduler) Tick(ctx context.Context) {
	events, err := s.repo.GetDueEvents(ctx, s.now())
	if err != nil {
		s.l.Errorf(ctx, "scheduler: due event query failed: %v", err)
		return
	}

	for _, ev := range events {
		if ctx.Err() != nil {
			s.l.Infof(ctx, "scheduler: tick aborted, %v", ctx.Err())
			return
		}

		deliverCtx, cancel := context.WithTimeout(ctx, s.cfg.SinkTimeout)
		err := s.sink.Deliver(deliverCtx, ev.UserID, ev.Payload)
		cancel()
		if err != nil {
			s.l.Errorf(ctx, "scheduler: delivery of event %d failed, will retry: %v", ev.ID, err)
			continue
		}

		if err := s.repo.MarkDelivered(ctx, ev.ID); err != nil {
			// The user got the message but the flag didn't stick; the
			// event will be re-delivered next tick.
			s.l.Errorf(ctx, "scheduler: mark delivered failed for event %d: %v", ev.ID, err)
			continue
		}
		s.l.Infof(ctx, "scheduler: delivered event %d to user %d", ev.ID, ev.UserID)
	}
}
