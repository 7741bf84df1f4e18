package llmprovider

import (
	"context"
	"time"

	"pulse-assistant/pkg/fallback"
	"pulse-assistant/pkg/log"
)

// Manager orchestrates provider selection, fallback, and retry logic.
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager.
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // global timeout for the entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers,
// config, and logger. Providers are tried in slice order.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// GenerateContent runs the request through the provider fallback chain.
// The first provider honors req.Model as an override; later providers use
// their own configured models so a user-selected model cannot poison the
// fallback path.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	providers := m.providers
	if !m.config.FallbackEnabled {
		providers = providers[:1]
	}

	units := make([]fallback.Unit[*Response], 0, len(providers))
	for i, provider := range providers {
		provider := provider
		unitReq := *req
		if i > 0 {
			unitReq.Model = ""
		}

		model := provider.Model()
		if i == 0 && req.Model != "" {
			model = req.Model
		}

		units = append(units, fallback.Unit[*Response]{
			Name:  provider.Name(),
			Model: model,
			Do: func(ctx context.Context) (*Response, error) {
				resp, err := provider.GenerateContent(ctx, &unitReq)
				if err != nil {
					return nil, &ProviderError{Provider: provider.Name(), Err: err}
				}
				return resp, nil
			},
		})
	}

	resp, err := fallback.Run(ctx, fallback.Config{
		RetryAttempts:   m.config.RetryAttempts,
		RetryDelay:      m.config.RetryDelay,
		MaxTotalTimeout: m.config.MaxTotalTimeout,
	}, m.logger, units)
	if err != nil {
		return nil, err
	}

	m.logSuccess(ctx, resp)
	return resp, nil
}

func (m *Manager) logSuccess(ctx context.Context, resp *Response) {
	if resp.Usage == nil {
		return
	}
	m.logger.Infof(ctx, "llm generation successful: provider=%s model=%s input_tokens=%d output_tokens=%d",
		resp.ProviderName, resp.ModelName, resp.Usage.InputTokens, resp.Usage.OutputTokens)
}
