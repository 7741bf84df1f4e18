package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
	pkgResponse "pulse-assistant/pkg/response"
	pkgTelegram "pulse-assistant/pkg/telegram"
)

// maxMessageLen keeps each sendMessage under the Bot API's 4096-char
// limit with headroom for formatting.
const maxMessageLen = 4000

const (
	imagePrefix = "//img "
	voicePrefix = "//voice "
)

type handler struct {
	l   pkgLog.Logger
	uc  chat.UseCase
	bot *pkgTelegram.Bot
	cfg Config
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the update in a
// background goroutine: a full round (LLM + tools + final completion)
// can take far longer than Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		go func() {
			bgCtx := context.Background()
			if err := h.processCallback(bgCtx, cb); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: callback failed: %v", err)
			}
		}()
	case update.Message != nil:
		msg := update.Message
		go func() {
			bgCtx := context.Background()
			if err := h.processMessage(bgCtx, msg); err != nil {
				h.l.Errorf(bgCtx, "telegram handler: background processing failed: %v", err)
				_ = h.bot.SendMessage(msg.Chat.ID, "Something went wrong while handling your message. Please try again.")
			}
		}()
	default:
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	if msg.Text == "" || msg.From == nil {
		return nil
	}

	if !h.allowed(msg.From.ID) {
		h.l.Warnf(ctx, "telegram handler: rejected user %d", msg.From.ID)
		return h.bot.SendMessage(msg.Chat.ID, "Sorry, this is a private assistant.")
	}

	sc := model.Scope{
		UserID:   msg.From.ID,
		ChatID:   msg.Chat.ID,
		Username: msg.From.Username,
	}

	// ---- Built-in commands ----
	switch strings.TrimSpace(msg.Text) {
	case "/start":
		return h.bot.SendMessageWithMarkup(msg.Chat.ID,
			"👋 Hi! I'm *Pulse*, your personal assistant.\n\n"+
				"Just write to me. I can search the web, do math, keep your calendar, "+
				"set reminders and remember things about you.\n\n"+
				"`//img a cat in space` — generate a picture\n"+
				"`//voice hello` — say it out loud",
			"Markdown", mainKeyboard())
	case "/help":
		return h.bot.SendMessageWithMode(msg.Chat.ID, helpText, "Markdown")
	case "/clear":
		if err := h.uc.ClearHistory(ctx, sc); err != nil {
			return err
		}
		return h.bot.SendMessage(msg.Chat.ID, "🧹 Conversation history cleared. Memory and settings kept.")
	case "/memory":
		return h.sendMemory(ctx, sc)
	case "/forget":
		if err := h.uc.ClearMemory(ctx, sc); err != nil {
			return err
		}
		return h.bot.SendMessage(msg.Chat.ID, "🗑 All saved facts forgotten. History kept.")
	case "/settings":
		return h.bot.SendMessageWithMarkup(msg.Chat.ID, "Choose what to change:", "", settingsKeyboard(h.cfg.ChatModels))
	case "/config":
		return h.sendConfig(ctx, sc)
	}

	// ---- Media prefixes ----
	if prompt, ok := strings.CutPrefix(msg.Text, imagePrefix); ok {
		return h.generateImage(ctx, sc, prompt)
	}
	if text, ok := strings.CutPrefix(msg.Text, voicePrefix); ok {
		return h.synthesize(ctx, sc, text)
	}

	// ---- Conversation round ----
	if err := h.bot.SendChatAction(msg.Chat.ID, pkgTelegram.ActionTyping); err != nil {
		h.l.Warnf(ctx, "telegram handler: chat action failed: %v", err)
	}

	out, err := h.uc.Respond(ctx, sc, chat.RespondInput{Text: msg.Text})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: respond failed: %v", err)
		return h.bot.SendMessage(msg.Chat.ID, errorMessage(err))
	}

	for _, chunk := range chunkText(out.Reply, maxMessageLen) {
		if err := h.bot.SendMessage(msg.Chat.ID, chunk); err != nil {
			return err
		}
	}
	return nil
}

// processCallback handles inline keyboard presses from /settings.
func (h *handler) processCallback(ctx context.Context, cb *pkgTelegram.CallbackQuery) error {
	if cb.From == nil || !h.allowed(cb.From.ID) {
		return h.bot.AnswerCallbackQuery(cb.ID, "Not allowed")
	}

	sc := model.Scope{UserID: cb.From.ID, Username: cb.From.Username}
	if cb.Message != nil {
		sc.ChatID = cb.Message.Chat.ID
	}

	kind, value, ok := strings.Cut(cb.Data, ":")
	if !ok {
		return h.bot.AnswerCallbackQuery(cb.ID, "")
	}

	var err error
	var ack string
	switch kind {
	case "persona":
		err = h.uc.SetPersona(ctx, sc, value)
		ack = "Persona: " + value
	case "model":
		err = h.uc.SetChatModel(ctx, sc, value)
		ack = "Model: " + value
	default:
		ack = ""
	}
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: settings change failed: %v", err)
		return h.bot.AnswerCallbackQuery(cb.ID, errorMessage(err))
	}

	if err := h.bot.AnswerCallbackQuery(cb.ID, ack); err != nil {
		return err
	}
	if cb.Message != nil && ack != "" {
		return h.bot.EditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, "✅ "+ack, "")
	}
	return nil
}

func (h *handler) generateImage(ctx context.Context, sc model.Scope, prompt string) error {
	if err := h.bot.SendChatAction(sc.ChatID, pkgTelegram.ActionUploadPhoto); err != nil {
		h.l.Warnf(ctx, "telegram handler: chat action failed: %v", err)
	}

	out, err := h.uc.GenerateImage(ctx, sc, chat.ImageInput{Prompt: prompt})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: image generation failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, errorMessage(err))
	}
	return h.bot.SendPhoto(sc.ChatID, out.PNG, "image.png", out.Prompt)
}

func (h *handler) synthesize(ctx context.Context, sc model.Scope, text string) error {
	if err := h.bot.SendChatAction(sc.ChatID, pkgTelegram.ActionUploadVoice); err != nil {
		h.l.Warnf(ctx, "telegram handler: chat action failed: %v", err)
	}

	out, err := h.uc.Synthesize(ctx, sc, chat.VoiceInput{Text: text})
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: synthesis failed: %v", err)
		return h.bot.SendMessage(sc.ChatID, errorMessage(err))
	}
	return h.bot.SendVoice(sc.ChatID, out.Audio, "voice.ogg")
}

func (h *handler) sendMemory(ctx context.Context, sc model.Scope) error {
	out, err := h.uc.ListMemory(ctx, sc)
	if err != nil {
		return err
	}
	if len(out.Facts) == 0 {
		return h.bot.SendMessage(sc.ChatID, "I haven't saved anything about you yet.")
	}

	var b strings.Builder
	b.WriteString("🧠 What I remember:\n")
	for i, f := range out.Facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Content)
	}
	return h.bot.SendMessage(sc.ChatID, b.String())
}

func (h *handler) sendConfig(ctx context.Context, sc model.Scope) error {
	out, err := h.uc.CurrentConfig(ctx, sc)
	if err != nil {
		return err
	}
	return h.bot.SendMessage(sc.ChatID, fmt.Sprintf(
		"Current settings:\n• chat model: %s\n• image model: %s\n• persona: %s",
		out.ChatModel, out.ImageModel, out.Persona))
}

func (h *handler) allowed(userID int64) bool {
	return h.cfg.AdminID == 0 || userID == h.cfg.AdminID
}

// chunkText splits text into pieces of at most limit runes, preferring
// line boundaries.
func chunkText(text string, limit int) []string {
	if text == "" {
		return []string{""}
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	chunks = append(chunks, string(runes))
	return chunks
}
