package usecase

import (
	"context"
	"time"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/llmprovider"
)

// Mock logger for testing
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

// mockManager scripts completion responses. Each call pops the next
// response; requests are recorded for assertions.
type mockManager struct {
	responses []*llmprovider.Response
	err       error
	requests  []*llmprovider.Request
}

func (m *mockManager) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	reqCopy := *req
	m.requests = append(m.requests, &reqCopy)
	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &llmprovider.Response{Message: llmprovider.Message{Role: model.RoleAssistant, Content: "ok"}}, nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// mockInference scripts the image/TTS client.
type mockInference struct {
	png       []byte
	audio     []byte
	err       error
	imgModels []string // models requested, in order
}

func (m *mockInference) GenerateImage(ctx context.Context, mdl, prompt string) ([]byte, error) {
	m.imgModels = append(m.imgModels, mdl)
	return m.png, m.err
}

func (m *mockInference) Synthesize(ctx context.Context, mdl, text string) ([]byte, error) {
	return m.audio, m.err
}

// mockRepo is an in-memory repository.Repository.
type mockRepo struct {
	session     model.Session
	sessionErr  error
	facts       []model.MemoryFact
	factsErr    error
	saved       [][]model.Turn
	saveErr     error
	cleared     bool
	memCleared  bool
	chatModel   string
	imageModel  string
	persona     string
	events      []repository.AddEventOptions
	calEvents   []model.CalendarEvent
	calCreated  []repository.CreateCalendarEventOptions
	markedDone  []int64
	dueEvents   []model.ScheduledEvent
	dueEventErr error
}

var _ repository.Repository = (*mockRepo)(nil)

func (m *mockRepo) GetSession(ctx context.Context, userID int64) (model.Session, error) {
	if m.sessionErr != nil {
		return model.Session{}, m.sessionErr
	}
	return m.session, nil
}

func (m *mockRepo) SaveHistory(ctx context.Context, userID int64, history []model.Turn) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, history)
	return nil
}

func (m *mockRepo) ClearHistory(ctx context.Context, userID int64) error {
	m.cleared = true
	return nil
}

func (m *mockRepo) SetChatModel(ctx context.Context, userID int64, v string) error {
	m.chatModel = v
	return nil
}

func (m *mockRepo) SetImageModel(ctx context.Context, userID int64, v string) error {
	m.imageModel = v
	return nil
}

func (m *mockRepo) SetPersona(ctx context.Context, userID int64, v string) error {
	m.persona = v
	return nil
}

func (m *mockRepo) AddEvent(ctx context.Context, opt repository.AddEventOptions) (model.ScheduledEvent, error) {
	m.events = append(m.events, opt)
	return model.ScheduledEvent{ID: int64(len(m.events))}, nil
}

func (m *mockRepo) GetDueEvents(ctx context.Context, now time.Time) ([]model.ScheduledEvent, error) {
	return m.dueEvents, m.dueEventErr
}

func (m *mockRepo) MarkDelivered(ctx context.Context, id int64) error {
	m.markedDone = append(m.markedDone, id)
	return nil
}

func (m *mockRepo) AddMemoryFact(ctx context.Context, userID int64, content string) error {
	m.facts = append(m.facts, model.MemoryFact{ID: int64(len(m.facts) + 1), UserID: userID, Content: content})
	return nil
}

func (m *mockRepo) GetMemoryFacts(ctx context.Context, userID int64) ([]model.MemoryFact, error) {
	if m.factsErr != nil {
		return nil, m.factsErr
	}
	return m.facts, nil
}

func (m *mockRepo) ClearMemory(ctx context.Context, userID int64) error {
	m.memCleared = true
	return nil
}

func (m *mockRepo) CreateCalendarEvent(ctx context.Context, opt repository.CreateCalendarEventOptions) (model.CalendarEvent, error) {
	m.calCreated = append(m.calCreated, opt)
	ev := model.CalendarEvent{
		ID:          int64(len(m.calCreated)),
		UserID:      opt.UserID,
		Summary:     opt.Summary,
		Description: opt.Description,
		StartAt:     opt.StartAt,
		EndAt:       opt.EndAt,
	}
	m.calEvents = append(m.calEvents, ev)
	return ev, nil
}

func (m *mockRepo) ListCalendarEvents(ctx context.Context, opt repository.ListCalendarEventsOptions) ([]model.CalendarEvent, error) {
	return m.calEvents, nil
}

// echoTool returns its "msg" argument, or a fixed string.
type echoTool struct {
	name  string
	calls int
}

func (e *echoTool) Name() string                       { return e.name }
func (e *echoTool) Description() string                { return "echo" }
func (e *echoTool) Parameters() map[string]interface{} { return nil }
func (e *echoTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (interface{}, error) {
	e.calls++
	if msg, ok := args["msg"].(string); ok {
		return msg, nil
	}
	return "echo", nil
}

func newTestUseCase(manager CompletionManager, repo repository.Repository, tools ...agent.Tool) *implUseCase {
	l := &mockLogger{}
	registry := agent.NewToolRegistry()
	for _, tool := range tools {
		registry.Register(tool)
	}
	uc := New(l, manager, &mockInference{}, registry, agent.NewDispatcher(registry, l), repo, Config{
		HistoryWindow:     10,
		DefaultPersona:    "default",
		Temperature:       0.7,
		DefaultImageModel: "test/image-model",
		VoiceModel:        "test/tts-model",
	})
	return uc.(*implUseCase)
}
