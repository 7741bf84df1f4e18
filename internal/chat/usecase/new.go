package usecase

import (
	"context"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/chat/repository"
	"pulse-assistant/pkg/fallback"
	"pulse-assistant/pkg/hfinference"
	pkgLog "pulse-assistant/pkg/log"
	"pulse-assistant/pkg/llmprovider"
)

// CompletionManager abstracts the chat completion fallback chain for
// mocking.
type CompletionManager interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config holds orchestration settings for the chat usecase.
type Config struct {
	HistoryWindow  int     // K: persisted turns besides the system turn
	DefaultPersona string  // persona key used when the session has none
	Temperature    float64 // sampling temperature for completions

	DefaultImageModel string // image model used when the user set none
	VoiceModel        string // TTS model

	MediaFallback fallback.Config // retry policy for the image chain
}

type implUseCase struct {
	l          pkgLog.Logger
	manager    CompletionManager
	inference  hfinference.IInference
	registry   *agent.ToolRegistry
	dispatcher *agent.Dispatcher
	repo       repository.Repository
	locks      *userLocks
	cfg        Config
}

// New creates a new chat UseCase instance.
func New(
	l pkgLog.Logger,
	manager CompletionManager,
	inference hfinference.IInference,
	registry *agent.ToolRegistry,
	dispatcher *agent.Dispatcher,
	repo repository.Repository,
	cfg Config,
) chat.UseCase {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}
	return &implUseCase{
		l:          l,
		manager:    manager,
		inference:  inference,
		registry:   registry,
		dispatcher: dispatcher,
		repo:       repo,
		locks:      newUserLocks(),
		cfg:        cfg,
	}
}
