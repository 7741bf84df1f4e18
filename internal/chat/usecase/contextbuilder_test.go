package usecase

import (
	"fmt"
	"strings"
	"testing"

	"pulse-assistant/internal/model"
)

func TestBuildContext(t *testing.T) {
	uc := newTestUseCase(&mockManager{}, &mockRepo{})

	t.Run("fresh session", func(t *testing.T) {
		turns := uc.buildContext(model.Session{UserID: 1}, nil, "hello")

		if len(turns) != 2 {
			t.Fatalf("expected system + user, got %d turns", len(turns))
		}
		if turns[0].Role != model.RoleSystem {
			t.Errorf("index 0 must be system, got %s", turns[0].Role)
		}
		if turns[1].Role != model.RoleUser || turns[1].Content != "hello" {
			t.Errorf("unexpected user turn: %+v", turns[1])
		}
	})

	t.Run("bounded window", func(t *testing.T) {
		session := model.Session{UserID: 1}
		session.History = append(session.History, model.Turn{Role: model.RoleSystem, Content: "stale system"})
		for i := 0; i < 30; i++ {
			session.History = append(session.History, model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)})
		}

		turns := uc.buildContext(session, nil, "newest")

		// system + K history + new user turn
		if len(turns) != uc.cfg.HistoryWindow+2 {
			t.Fatalf("expected %d turns, got %d", uc.cfg.HistoryWindow+2, len(turns))
		}
		if turns[0].Role != model.RoleSystem {
			t.Errorf("index 0 must be system")
		}
		if turns[0].Content == "stale system" {
			t.Errorf("system turn must be rewritten, not carried over")
		}
		if turns[1].Content != "m20" {
			t.Errorf("window must keep the most recent turns, got %q first", turns[1].Content)
		}
		if turns[len(turns)-1].Content != "newest" {
			t.Errorf("last turn must be the new user message")
		}
	})

	t.Run("window never starts with an orphan tool turn", func(t *testing.T) {
		// 12 stored turns with a tool round near the head: the K=10 cut
		// falls between the assistant tool_calls turn and its results.
		session := model.Session{UserID: 1}
		session.History = append(session.History,
			model.Turn{Role: model.RoleUser, Content: "what time is it"},
			model.Turn{Role: model.RoleAssistant, ToolCalls: []model.ToolCall{{ID: "c1", Name: "get_current_time"}}},
			model.Turn{Role: model.RoleTool, Content: "12:00", ToolCallID: "c1"},
			model.Turn{Role: model.RoleTool, Content: "extra", ToolCallID: "c2"},
		)
		for i := 0; i < 8; i++ {
			session.History = append(session.History, model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)})
		}

		turns := uc.buildContext(session, nil, "newest")

		if turns[1].Role == model.RoleTool {
			t.Fatalf("window starts with an orphan tool turn: %+v", turns[1])
		}
		if turns[1].Content != "m0" {
			t.Errorf("expected orphaned tool results dropped, got %q first", turns[1].Content)
		}
	})

	t.Run("memory digest in system turn", func(t *testing.T) {
		facts := []model.MemoryFact{{Content: "name is Ana"}, {Content: "vegan"}}
		turns := uc.buildContext(model.Session{UserID: 1}, facts, "hi")

		if !strings.Contains(turns[0].Content, "- name is Ana") || !strings.Contains(turns[0].Content, "- vegan") {
			t.Errorf("facts missing from system turn: %q", turns[0].Content)
		}
	})

	t.Run("persona selects template", func(t *testing.T) {
		formal := uc.buildContext(model.Session{Persona: "formal"}, nil, "hi")[0].Content
		unknown := uc.buildContext(model.Session{Persona: "no-such"}, nil, "hi")[0].Content

		if !strings.Contains(formal, "formally") {
			t.Errorf("formal template not applied: %q", formal)
		}
		if !strings.Contains(unknown, "helpful personal assistant") {
			t.Errorf("unknown persona must fall back to default: %q", unknown)
		}
	})
}

func TestCapHistory(t *testing.T) {
	turns := []model.Turn{{Role: model.RoleSystem, Content: "sys"}}
	for i := 0; i < 25; i++ {
		turns = append(turns, model.Turn{Role: model.RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	capped := capHistory(turns, 10)

	if len(capped) != 11 {
		t.Fatalf("expected system + 10, got %d", len(capped))
	}
	if capped[0].Content != "sys" {
		t.Errorf("system turn must survive capping")
	}
	if capped[1].Content != "m15" {
		t.Errorf("expected the last 10 turns, got %q first", capped[1].Content)
	}

	t.Run("short history untouched", func(t *testing.T) {
		short := []model.Turn{{Role: model.RoleSystem}, {Role: model.RoleUser, Content: "a"}}
		if got := capHistory(short, 10); len(got) != 2 {
			t.Errorf("expected 2 turns, got %d", len(got))
		}
	})

	t.Run("cut through a tool round drops the orphans", func(t *testing.T) {
		turns := []model.Turn{
			{Role: model.RoleSystem, Content: "sys"},
			{Role: model.RoleUser, Content: "hi"},
			{Role: model.RoleAssistant, ToolCalls: []model.ToolCall{{ID: "c1", Name: "search_web"}}},
			{Role: model.RoleTool, Content: "result", ToolCallID: "c1"},
			{Role: model.RoleAssistant, Content: "answer"},
			{Role: model.RoleUser, Content: "more"},
			{Role: model.RoleAssistant, Content: "reply"},
		}

		// k=4 slices off the user and assistant tool_calls turns, leaving
		// the tool result first; it must not be persisted that way.
		capped := capHistory(turns, 4)

		if capped[0].Content != "sys" {
			t.Fatalf("system turn must survive capping")
		}
		if capped[1].Role == model.RoleTool {
			t.Fatalf("persisted window starts with an orphan tool turn: %+v", capped[1])
		}
		if capped[1].Content != "answer" {
			t.Errorf("expected window to start at the assistant answer, got %q", capped[1].Content)
		}
	})
}
