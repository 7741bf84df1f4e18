package usecase

import (
	"context"
	"testing"

	"pulse-assistant/internal/model"
)

func TestSettings(t *testing.T) {
	t.Run("persona must exist", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(&mockManager{}, repo)

		if err := uc.SetPersona(context.Background(), testScope, "Formal"); err != nil {
			t.Fatalf("known persona rejected: %v", err)
		}
		if repo.persona != "formal" {
			t.Errorf("persona not normalized: %q", repo.persona)
		}
		if err := uc.SetPersona(context.Background(), testScope, "wizard"); err == nil {
			t.Error("unknown persona accepted")
		}
	})

	t.Run("current config fills defaults", func(t *testing.T) {
		uc := newTestUseCase(&mockManager{}, &mockRepo{})

		out, err := uc.CurrentConfig(context.Background(), testScope)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ChatModel != "default" || out.ImageModel != "test/image-model" || out.Persona != "default" {
			t.Errorf("defaults not applied: %+v", out)
		}
	})

	t.Run("current config keeps overrides", func(t *testing.T) {
		repo := &mockRepo{session: model.Session{ChatModel: "m1", ImageModel: "m2", Persona: "formal"}}
		uc := newTestUseCase(&mockManager{}, repo)

		out, _ := uc.CurrentConfig(context.Background(), testScope)
		if out.ChatModel != "m1" || out.ImageModel != "m2" || out.Persona != "formal" {
			t.Errorf("overrides lost: %+v", out)
		}
	})

	t.Run("clear history leaves memory", func(t *testing.T) {
		repo := &mockRepo{facts: []model.MemoryFact{{Content: "a fact"}}}
		uc := newTestUseCase(&mockManager{}, repo)

		if err := uc.ClearHistory(context.Background(), testScope); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.cleared {
			t.Error("history not cleared")
		}
		if repo.memCleared {
			t.Error("memory must survive a history clear")
		}

		out, _ := uc.ListMemory(context.Background(), testScope)
		if len(out.Facts) != 1 {
			t.Errorf("facts lost: %+v", out.Facts)
		}
	})

	t.Run("clear memory leaves history", func(t *testing.T) {
		repo := &mockRepo{}
		uc := newTestUseCase(&mockManager{}, repo)

		if err := uc.ClearMemory(context.Background(), testScope); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !repo.memCleared {
			t.Error("memory not cleared")
		}
		if repo.cleared {
			t.Error("history must survive a memory clear")
		}
	})
}
