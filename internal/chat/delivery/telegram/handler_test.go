package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/chat/delivery/telegram"
	"pulse-assistant/internal/model"
	pkgTelegram "pulse-assistant/pkg/telegram"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

type mockUseCase struct {
	respondOut chat.RespondOutput
	respondErr error
	imageOut   chat.ImageOutput
	personaSet string
	modelSet   string
	cleared    bool
}

func (m *mockUseCase) Respond(ctx context.Context, sc model.Scope, input chat.RespondInput) (chat.RespondOutput, error) {
	return m.respondOut, m.respondErr
}
func (m *mockUseCase) GenerateImage(ctx context.Context, sc model.Scope, input chat.ImageInput) (chat.ImageOutput, error) {
	return m.imageOut, nil
}
func (m *mockUseCase) Synthesize(ctx context.Context, sc model.Scope, input chat.VoiceInput) (chat.VoiceOutput, error) {
	return chat.VoiceOutput{Audio: []byte("OGG")}, nil
}
func (m *mockUseCase) SetChatModel(ctx context.Context, sc model.Scope, v string) error {
	m.modelSet = v
	return nil
}
func (m *mockUseCase) SetImageModel(ctx context.Context, sc model.Scope, v string) error { return nil }
func (m *mockUseCase) SetPersona(ctx context.Context, sc model.Scope, v string) error {
	m.personaSet = v
	return nil
}
func (m *mockUseCase) CurrentConfig(ctx context.Context, sc model.Scope) (chat.ConfigOutput, error) {
	return chat.ConfigOutput{ChatModel: "default", ImageModel: "img", Persona: "default"}, nil
}
func (m *mockUseCase) ClearHistory(ctx context.Context, sc model.Scope) error {
	m.cleared = true
	return nil
}
func (m *mockUseCase) ListMemory(ctx context.Context, sc model.Scope) (chat.MemoryOutput, error) {
	return chat.MemoryOutput{}, nil
}
func (m *mockUseCase) ClearMemory(ctx context.Context, sc model.Scope) error { return nil }

// capture records the Bot API methods the handler invoked.
type capture struct {
	mu       sync.Mutex
	methods  []string
	messages []string
}

func (c *capture) add(method, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods = append(c.methods, method)
	if text != "" {
		c.messages = append(c.messages, text)
	}
}

func (c *capture) count(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.methods {
		if m == method {
			n++
		}
	}
	return n
}

func (c *capture) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

func newTestEnv(t *testing.T, muc *mockUseCase, adminID int64) (*gin.Engine, *capture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calls := &capture{}
	tgServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var text string
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var payload map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&payload)
			text, _ = payload["text"].(string)
		}
		calls.add(method, text)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(tgServer.Close)

	bot := pkgTelegram.NewBot("test-token")
	bot.SetAPIURL(tgServer.URL)

	h := telegram.New(&mockLogger{}, muc, bot, telegram.Config{AdminID: adminID})
	engine := gin.New()
	engine.POST("/webhook/telegram", h.HandleWebhook)
	return engine, calls
}

func sendUpdate(engine *gin.Engine, update pkgTelegram.Update) *httptest.ResponseRecorder {
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func textUpdate(userID int64, text string) pkgTelegram.Update {
	return pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: userID},
			From:      &pkgTelegram.User{ID: userID, Username: "tester"},
			Text:      text,
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestHandleWebhook_AcksImmediately(t *testing.T) {
	engine, _ := newTestEnv(t, &mockUseCase{respondOut: chat.RespondOutput{Reply: "hello"}}, 0)

	w := sendUpdate(engine, textUpdate(1, "hi"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleWebhook_RepliesInBackground(t *testing.T) {
	muc := &mockUseCase{respondOut: chat.RespondOutput{Reply: "hello back"}}
	engine, calls := newTestEnv(t, muc, 0)

	sendUpdate(engine, textUpdate(1, "hi"))

	waitFor(t, func() bool { return calls.count("sendMessage") >= 1 })
	if texts := calls.texts(); texts[len(texts)-1] != "hello back" {
		t.Errorf("unexpected reply: %v", texts)
	}
}

func TestHandleWebhook_LongReplyIsChunked(t *testing.T) {
	long := strings.Repeat("line of text\n", 700) // well over 4000 chars
	muc := &mockUseCase{respondOut: chat.RespondOutput{Reply: long}}
	engine, calls := newTestEnv(t, muc, 0)

	sendUpdate(engine, textUpdate(1, "hi"))

	waitFor(t, func() bool { return calls.count("sendMessage") >= 3 })
}

func TestHandleWebhook_NonAdminRejected(t *testing.T) {
	muc := &mockUseCase{respondOut: chat.RespondOutput{Reply: "secret"}}
	engine, calls := newTestEnv(t, muc, 99)

	sendUpdate(engine, textUpdate(1, "hi"))

	waitFor(t, func() bool { return calls.count("sendMessage") >= 1 })
	texts := calls.texts()
	if !strings.Contains(texts[0], "private") {
		t.Errorf("expected rejection message, got %v", texts)
	}
	if len(texts) > 1 {
		t.Errorf("no further replies expected: %v", texts)
	}
}

func TestHandleWebhook_ImageCommand(t *testing.T) {
	muc := &mockUseCase{imageOut: chat.ImageOutput{PNG: []byte("PNG"), Prompt: "a cat"}}
	engine, calls := newTestEnv(t, muc, 0)

	sendUpdate(engine, textUpdate(1, "//img a cat"))

	waitFor(t, func() bool { return calls.count("sendPhoto") >= 1 })
}

func TestHandleWebhook_ClearCommand(t *testing.T) {
	muc := &mockUseCase{}
	engine, calls := newTestEnv(t, muc, 0)

	sendUpdate(engine, textUpdate(1, "/clear"))

	waitFor(t, func() bool { return calls.count("sendMessage") >= 1 })
	if !muc.cleared {
		t.Error("ClearHistory not invoked")
	}
}

func TestHandleWebhook_PersonaCallback(t *testing.T) {
	muc := &mockUseCase{}
	engine, calls := newTestEnv(t, muc, 0)

	sendUpdate(engine, pkgTelegram.Update{
		UpdateID: 2,
		CallbackQuery: &pkgTelegram.CallbackQuery{
			ID:      "cb1",
			From:    &pkgTelegram.User{ID: 1},
			Message: &pkgTelegram.Message{MessageID: 5, Chat: &pkgTelegram.Chat{ID: 1}},
			Data:    "persona:formal",
		},
	})

	waitFor(t, func() bool { return calls.count("answerCallbackQuery") >= 1 })
	if muc.personaSet != "formal" {
		t.Errorf("persona not set, got %q", muc.personaSet)
	}
}

func TestHandleWebhook_IgnoresNonMessageUpdates(t *testing.T) {
	engine, calls := newTestEnv(t, &mockUseCase{}, 0)

	w := sendUpdate(engine, pkgTelegram.Update{UpdateID: 3})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	time.Sleep(50 * time.Millisecond)
	if calls.count("sendMessage") != 0 {
		t.Error("no messages expected for empty updates")
	}
}
