package tools_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"pulse-assistant/internal/agent/tools"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/datemath"
)

// mockLogger
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

// mockSearch
type mockSearch struct {
	digest string
	err    error
	query  string
}

func (m *mockSearch) Search(ctx context.Context, query string) (string, error) {
	m.query = query
	return m.digest, m.err
}

// mockRetriever
type mockRetriever struct {
	text    string
	err     error
	fetched string
}

func (m *mockRetriever) FetchText(ctx context.Context, url string) (string, error) {
	m.fetched = url
	return m.text, m.err
}

func (m *mockRetriever) FetchChannel(ctx context.Context, channel string) (string, error) {
	m.fetched = channel
	return m.text, m.err
}

// mockEventRepo
type mockEventRepo struct {
	added []repository.AddEventOptions
	err   error
}

func (m *mockEventRepo) AddEvent(ctx context.Context, opt repository.AddEventOptions) (model.ScheduledEvent, error) {
	if m.err != nil {
		return model.ScheduledEvent{}, m.err
	}
	m.added = append(m.added, opt)
	return model.ScheduledEvent{ID: int64(len(m.added)), UserID: opt.UserID, Payload: opt.Payload, DueAt: opt.DueAt, Status: model.EventStatusPending}, nil
}

func (m *mockEventRepo) GetDueEvents(ctx context.Context, now time.Time) ([]model.ScheduledEvent, error) {
	return nil, nil
}

func (m *mockEventRepo) MarkDelivered(ctx context.Context, id int64) error { return nil }

// mockMemoryRepo
type mockMemoryRepo struct {
	facts []string
	err   error
}

func (m *mockMemoryRepo) AddMemoryFact(ctx context.Context, userID int64, content string) error {
	if m.err != nil {
		return m.err
	}
	m.facts = append(m.facts, content)
	return nil
}

func (m *mockMemoryRepo) GetMemoryFacts(ctx context.Context, userID int64) ([]model.MemoryFact, error) {
	return nil, nil
}

func (m *mockMemoryRepo) ClearMemory(ctx context.Context, userID int64) error { return nil }

// mockCalendarRepo
type mockCalendarRepo struct {
	events  []model.CalendarEvent
	created []repository.CreateCalendarEventOptions
	err     error
}

func (m *mockCalendarRepo) CreateCalendarEvent(ctx context.Context, opt repository.CreateCalendarEventOptions) (model.CalendarEvent, error) {
	if m.err != nil {
		return model.CalendarEvent{}, m.err
	}
	m.created = append(m.created, opt)
	return model.CalendarEvent{ID: 1, UserID: opt.UserID, Summary: opt.Summary, StartAt: opt.StartAt, EndAt: opt.EndAt}, nil
}

func (m *mockCalendarRepo) ListCalendarEvents(ctx context.Context, opt repository.ListCalendarEventsOptions) ([]model.CalendarEvent, error) {
	return m.events, m.err
}

var testScope = model.Scope{UserID: 7, ChatID: 7}

func TestSearchWebTool(t *testing.T) {
	search := &mockSearch{digest: "Answer: 42"}
	tool := tools.NewSearchWebTool(search, &mockLogger{})

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"query": "meaning of life"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Answer: 42" {
		t.Errorf("unexpected digest: %v", out)
	}
	if search.query != "meaning of life" {
		t.Errorf("query not forwarded: %q", search.query)
	}

	if _, err := tool.Execute(context.Background(), testScope, map[string]interface{}{}); err == nil {
		t.Error("expected error for missing query")
	}
}

func TestCurrentTimeTool(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	tool := tools.NewCurrentTimeTool(loc)

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, ok := out.(string)
	if !ok || !strings.Contains(text, "UTC") {
		t.Errorf("unexpected result: %v", out)
	}
}

func TestCalculateMathTool(t *testing.T) {
	tool := tools.NewCalculateMathTool()

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"expression": "2^10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.(string), "1024") {
		t.Errorf("unexpected result: %v", out)
	}

	if _, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"expression": "import os"}); err == nil {
		t.Error("expected error for non-arithmetic input")
	}
}

func TestAddReminderTool(t *testing.T) {
	repo := &mockEventRepo{}
	dm, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("parser: %v", err)
	}
	tool := tools.NewAddReminderTool(repo, dm, &mockLogger{})

	_, err = tool.Execute(context.Background(), testScope, map[string]interface{}{
		"text":     "drink water",
		"time_str": "in 15 minutes",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.added) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.added))
	}
	if repo.added[0].UserID != 7 || repo.added[0].Payload != "drink water" {
		t.Errorf("unexpected event: %+v", repo.added[0])
	}
	if until := time.Until(repo.added[0].DueAt); until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("due time not ~15 minutes out: %v", repo.added[0].DueAt)
	}

	t.Run("unparseable time", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
			"text":     "x",
			"time_str": "whenever",
		})
		if err == nil {
			t.Error("expected error for unparseable time")
		}
	})
}

func TestSaveMemoryTool(t *testing.T) {
	repo := &mockMemoryRepo{}
	tool := tools.NewSaveMemoryTool(repo, &mockLogger{})

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"content": "likes green tea"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.facts) != 1 || repo.facts[0] != "likes green tea" {
		t.Errorf("fact not saved: %+v", repo.facts)
	}
	if !strings.Contains(out.(string), "likes green tea") {
		t.Errorf("unexpected confirmation: %v", out)
	}
}

func TestAnalyzeDocTool(t *testing.T) {
	retriever := &mockRetriever{text: "report body"}
	tool := tools.NewAnalyzeDocTool(retriever, &mockLogger{})

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
		"path":  "https://example.com/report",
		"query": "what is the conclusion",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.(string), "report body") {
		t.Errorf("document text missing from result: %v", out)
	}

	t.Run("fetch failure surfaces as error", func(t *testing.T) {
		retriever := &mockRetriever{err: errors.New("boom")}
		tool := tools.NewAnalyzeDocTool(retriever, &mockLogger{})
		if _, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"path": "https://x", "query": "q"}); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSummarizeChannelTool(t *testing.T) {
	retriever := &mockRetriever{text: "post one\npost two"}
	tool := tools.NewSummarizeChannelTool(retriever, &mockLogger{})

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{"channel_name": "@news"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.(string), "post one") {
		t.Errorf("posts missing from result: %v", out)
	}
	if retriever.fetched != "@news" {
		t.Errorf("channel not forwarded: %q", retriever.fetched)
	}
}

func TestCheckCalendarTool(t *testing.T) {
	loc := time.UTC
	repo := &mockCalendarRepo{events: []model.CalendarEvent{
		{Summary: "Standup", StartAt: time.Date(2026, 3, 2, 9, 0, 0, 0, loc), EndAt: time.Date(2026, 3, 2, 9, 30, 0, 0, loc)},
	}}
	tool := tools.NewCheckCalendarTool(repo, loc, &mockLogger{})

	out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
		"start_date": "2026-03-01",
		"end_date":   "2026-03-07",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.(string), "Standup") {
		t.Errorf("event missing from listing: %v", out)
	}

	t.Run("empty window", func(t *testing.T) {
		tool := tools.NewCheckCalendarTool(&mockCalendarRepo{}, loc, &mockLogger{})
		out, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
			"start_date": "2026-03-01",
			"end_date":   "2026-03-07",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.(string), "No events") {
			t.Errorf("expected empty message, got %v", out)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		if _, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
			"start_date": "03/01/2026",
			"end_date":   "2026-03-07",
		}); err == nil {
			t.Error("expected error for bad date format")
		}
	})
}

func TestCreateCalendarEventTool(t *testing.T) {
	loc := time.UTC
	repo := &mockCalendarRepo{}
	tool := tools.NewCreateCalendarEventTool(repo, loc, &mockLogger{})

	_, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
		"summary":    "Dentist",
		"start_time": "2026-03-02 14:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.created))
	}
	opt := repo.created[0]
	if opt.Summary != "Dentist" || opt.UserID != 7 {
		t.Errorf("unexpected event: %+v", opt)
	}
	if got := opt.EndAt.Sub(opt.StartAt); got != time.Hour {
		t.Errorf("expected 1h default duration, got %v", got)
	}

	t.Run("end before start", func(t *testing.T) {
		if _, err := tool.Execute(context.Background(), testScope, map[string]interface{}{
			"summary":    "X",
			"start_time": "2026-03-02 14:00",
			"end_time":   "2026-03-02 13:00",
		}); err == nil {
			t.Error("expected error for inverted range")
		}
	})
}
