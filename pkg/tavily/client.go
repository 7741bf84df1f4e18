package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ISearch defines the interface for the Tavily web search client.
type ISearch interface {
	// Search runs a web search and returns a plain-text digest suitable
	// for feeding back to a language model.
	Search(ctx context.Context, query string) (string, error)
}

type searchImpl struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// New creates a new Tavily search client.
func New(cfg Config) (ISearch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &searchImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
		httpClient: cfg.HTTPClient,
	}, nil
}

// Search runs a basic-depth web search and formats the results.
func (c *searchImpl) Search(ctx context.Context, query string) (string, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    c.maxResults,
	})
	if err != nil {
		return "", fmt.Errorf("tavily: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("tavily: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("tavily: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("tavily: API error %d: %s", resp.StatusCode, string(raw))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return "", fmt.Errorf("tavily: failed to decode response: %w", err)
	}

	return formatDigest(&searchResp), nil
}

// formatDigest folds the answer and results into one block of text the
// model can summarize from.
func formatDigest(resp *searchResponse) string {
	var b strings.Builder
	b.WriteString("Search results:\n\n")

	if resp.Answer != "" {
		fmt.Fprintf(&b, "Summary answer: %s\n\n", resp.Answer)
	}

	for _, res := range resp.Results {
		fmt.Fprintf(&b, "- %s\n  URL: %s\n  Content: %s\n\n", res.Title, res.URL, res.Content)
	}

	if len(resp.Results) == 0 && resp.Answer == "" {
		b.WriteString("No results found.\n")
	}

	return b.String()
}
