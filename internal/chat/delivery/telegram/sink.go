package telegram

import (
	"context"
	"fmt"

	pkgTelegram "pulse-assistant/pkg/telegram"
)

// ReminderSink pushes due reminders to the user's private chat.
type ReminderSink struct {
	bot *pkgTelegram.Bot
}

func NewReminderSink(bot *pkgTelegram.Bot) *ReminderSink {
	return &ReminderSink{bot: bot}
}

func (s *ReminderSink) Deliver(ctx context.Context, userID int64, payload string) error {
	if err := s.bot.SendMessage(userID, "⏰ Reminder: "+payload); err != nil {
		return fmt.Errorf("send reminder to %d: %w", userID, err)
	}
	return nil
}
