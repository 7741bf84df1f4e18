package llmprovider

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"pulse-assistant/config"
	"pulse-assistant/pkg/groq"
)

// InitializeProviders creates Provider instances from config.LLMConfig.
// Returns adapters sorted by priority (ascending) with disabled entries
// filtered out. All entries share one Groq client; the fallback sequence
// varies the model, mirroring the preferred → instant policy.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: api_key is required")
	}

	var enabled []config.LLMModelConfig
	for _, m := range cfg.Models {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	timeout := groq.DefaultTimeout
	if cfg.RequestTimeout != "" {
		parsed, err := time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("llm: invalid request_timeout %q: %w", cfg.RequestTimeout, err)
		}
		timeout = parsed
	}

	client, err := groq.New(groq.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      enabled[0].Model,
		HTTPClient: &http.Client{Timeout: timeout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create groq client: %w", err)
	}

	providers := make([]Provider, 0, len(enabled))
	for _, m := range enabled {
		providers = append(providers, NewGroqAdapter(client, m.Model))
	}

	return providers, nil
}

// ManagerConfigFrom converts the duration strings in config.LLMConfig to
// a Manager Config, applying the reference policy defaults.
func ManagerConfigFrom(cfg *config.LLMConfig) (*Config, error) {
	out := &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      2 * time.Second,
	}
	if out.RetryAttempts <= 0 {
		out.RetryAttempts = 3
	}

	if cfg.RetryDelay != "" {
		delay, err := time.ParseDuration(cfg.RetryDelay)
		if err != nil {
			return nil, fmt.Errorf("llm: invalid retry_delay %q: %w", cfg.RetryDelay, err)
		}
		out.RetryDelay = delay
	}

	if cfg.MaxTotalTimeout != "" {
		total, err := time.ParseDuration(cfg.MaxTotalTimeout)
		if err != nil {
			return nil, fmt.Errorf("llm: invalid max_total_timeout %q: %w", cfg.MaxTotalTimeout, err)
		}
		out.MaxTotalTimeout = total
	}

	return out, nil
}
