// Package webdoc retrieves remote documents and public channel pages as
// plain text. It is the text-retrieval collaborator behind the document
// analysis and channel summarization tools: fetching and markup
// stripping live here, interpretation is left to the model.
package webdoc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBytes caps how much of a remote document is read.
	DefaultMaxBytes = 512 * 1024

	// DefaultMaxRunes caps the text handed back to the model.
	DefaultMaxRunes = 8000
)

// IRetriever defines the text retrieval interface.
type IRetriever interface {
	// FetchText downloads the given URL and returns its visible text,
	// markup stripped and length capped.
	FetchText(ctx context.Context, url string) (string, error)

	// FetchChannel fetches the public web preview of a Telegram channel
	// and returns its visible text.
	FetchChannel(ctx context.Context, channel string) (string, error)
}

// Config holds retriever configuration.
type Config struct {
	MaxBytes   int64
	MaxRunes   int
	HTTPClient *http.Client
}

type retrieverImpl struct {
	maxBytes   int64
	maxRunes   int
	httpClient *http.Client
}

// New creates a new text retriever.
func New(cfg Config) IRetriever {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxRunes <= 0 {
		cfg.MaxRunes = DefaultMaxRunes
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &retrieverImpl{
		maxBytes:   cfg.MaxBytes,
		maxRunes:   cfg.MaxRunes,
		httpClient: cfg.HTTPClient,
	}
}

// FetchText downloads the URL and strips markup when the payload is HTML.
func (r *retrieverImpl) FetchText(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("webdoc: unsupported source %q, only http(s) URLs are accepted", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("webdoc: failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("webdoc: fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("webdoc: fetch failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes))
	if err != nil {
		return "", fmt.Errorf("webdoc: failed to read body: %w", err)
	}

	text := string(raw)
	if strings.Contains(resp.Header.Get("Content-Type"), "html") || looksLikeHTML(text) {
		text = StripMarkup(text)
	}

	return truncateRunes(strings.TrimSpace(text), r.maxRunes), nil
}

// FetchChannel fetches https://t.me/s/<channel>, the public web preview
// that exists without any Telegram API credentials.
func (r *retrieverImpl) FetchChannel(ctx context.Context, channel string) (string, error) {
	channel = strings.TrimPrefix(strings.TrimSpace(channel), "@")
	if channel == "" {
		return "", fmt.Errorf("webdoc: channel name is empty")
	}
	return r.FetchText(ctx, fmt.Sprintf("https://t.me/s/%s", channel))
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype")
}

func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
