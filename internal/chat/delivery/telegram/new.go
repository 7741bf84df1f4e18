package telegram

import (
	"github.com/gin-gonic/gin"

	"pulse-assistant/internal/chat"
	pkgLog "pulse-assistant/pkg/log"
	pkgTelegram "pulse-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config holds delivery-layer settings.
type Config struct {
	// AdminID is the single allow-listed user. Zero admits everyone.
	AdminID int64

	// ChatModels are the selectable chat models shown in /settings.
	ChatModels []string
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, uc chat.UseCase, bot *pkgTelegram.Bot, cfg Config) Handler {
	return &handler{
		l:   l,
		uc:  uc,
		bot: bot,
		cfg: cfg,
	}
}
