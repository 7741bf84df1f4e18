package tools

import (
	"context"
	"fmt"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
	"pulse-assistant/pkg/tavily"
)

// SearchWebTool answers questions about current events through the web
// search provider.
type SearchWebTool struct {
	search tavily.ISearch
	l      pkgLog.Logger
}

// NewSearchWebTool creates a new web search tool.
func NewSearchWebTool(search tavily.ISearch, l pkgLog.Logger) agent.Tool {
	return &SearchWebTool{search: search, l: l}
}

func (t *SearchWebTool) Name() string {
	return "search_web"
}

func (t *SearchWebTool) Description() string {
	return "Search the internet for current information: news, weather, facts, prices, events. Use when the answer depends on up-to-date data."
}

func (t *SearchWebTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Search query in plain language",
			},
		},
		"required": []string{"query"},
	}
}

func (t *SearchWebTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return nil, fmt.Errorf("query parameter is required")
	}

	t.l.Infof(ctx, "search_web: user %d query %q", sc.UserID, query)

	digest, err := t.search.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return digest, nil
}

// Verify interface compliance
var _ agent.Tool = (*SearchWebTool)(nil)
