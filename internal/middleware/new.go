package middleware

import (
	"pulse-assistant/pkg/log"
)

// Config holds the webhook protection settings.
type Config struct {
	// WebhookSecret is compared against the X-Telegram-Bot-Api-Secret-Token
	// header. Empty disables the check.
	WebhookSecret string

	// RateLimitPerMin caps webhook requests per source per minute.
	// Zero disables rate limiting.
	RateLimitPerMin int
}

type Middleware struct {
	l       log.Logger
	cfg     Config
	limiter *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	var rl *rateLimiter
	if cfg.RateLimitPerMin > 0 {
		rl = newRateLimiter(cfg.RateLimitPerMin)
	}
	return Middleware{
		l:       l,
		cfg:     cfg,
		limiter: rl,
	}
}
