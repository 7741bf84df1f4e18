package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pulse-assistant/pkg/fallback"
)

// IInference defines the interface for the HuggingFace inference client.
// Implementations are safe for concurrent use.
type IInference interface {
	// GenerateImage runs a text-to-image model and returns the raw
	// image bytes (PNG/JPEG as produced by the model).
	GenerateImage(ctx context.Context, model, prompt string) ([]byte, error)

	// Synthesize runs a text-to-speech model and returns raw audio bytes.
	Synthesize(ctx context.Context, model, text string) ([]byte, error)
}

type inferenceImpl struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// New creates a new HuggingFace inference client.
func New(cfg Config) (IInference, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &inferenceImpl{
		token:      cfg.Token,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
	}, nil
}

// GenerateImage runs a text-to-image model.
func (c *inferenceImpl) GenerateImage(ctx context.Context, model, prompt string) ([]byte, error) {
	return c.infer(ctx, model, prompt)
}

// Synthesize runs a text-to-speech model.
func (c *inferenceImpl) Synthesize(ctx context.Context, model, text string) ([]byte, error) {
	return c.infer(ctx, model, text)
}

// infer posts an inputs payload to the model endpoint and returns the
// binary response body. 503 means the model is still loading on the shared
// tier and is classified transient; other non-200 statuses are rejected
// as non-retryable so the fallback chain advances to the next model.
func (c *inferenceImpl) infer(ctx context.Context, model, inputs string) ([]byte, error) {
	body, err := json.Marshal(inferRequest{Inputs: inputs})
	if err != nil {
		return nil, fmt.Errorf("hfinference: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("hfinference: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("hfinference: API call failed: %v: %w", err, fallback.ErrTransient)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("hfinference: failed to read payload: %w", err)
		}
		return payload, nil

	case resp.StatusCode == http.StatusServiceUnavailable:
		return nil, fmt.Errorf("hfinference: model %s is loading: %w", model, fallback.ErrTransient)

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("hfinference: model %s rate limited: %w", model, fallback.ErrRateLimited)

	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("hfinference: API error %d for model %s: %s: %w",
			resp.StatusCode, model, string(raw), fallback.ErrNonRetryable)
	}
}
