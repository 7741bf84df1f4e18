package tools

import (
	"context"
	"fmt"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
	"pulse-assistant/pkg/webdoc"
)

// SummarizeChannelTool fetches the public web preview of a Telegram
// channel so the model can summarize its recent posts.
type SummarizeChannelTool struct {
	retriever webdoc.IRetriever
	l         pkgLog.Logger
}

// NewSummarizeChannelTool creates a new channel summary tool.
func NewSummarizeChannelTool(retriever webdoc.IRetriever, l pkgLog.Logger) agent.Tool {
	return &SummarizeChannelTool{retriever: retriever, l: l}
}

func (t *SummarizeChannelTool) Name() string {
	return "summarize_channel"
}

func (t *SummarizeChannelTool) Description() string {
	return "Fetch the recent public posts of a Telegram channel by its name (e.g. \"durov\" or \"@durov\") so they can be summarized."
}

func (t *SummarizeChannelTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"channel_name": map[string]interface{}{
				"type":        "string",
				"description": "Public channel username, with or without @",
			},
		},
		"required": []string{"channel_name"},
	}
}

func (t *SummarizeChannelTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	channel, ok := params["channel_name"].(string)
	if !ok || channel == "" {
		return nil, fmt.Errorf("channel_name parameter is required")
	}

	t.l.Infof(ctx, "summarize_channel: user %d channel %s", sc.UserID, channel)

	text, err := t.retriever.FetchChannel(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel %q: %w", channel, err)
	}
	if text == "" {
		return nil, fmt.Errorf("channel %q has no readable public posts", channel)
	}

	return "Recent channel posts:\n\n" + text, nil
}

// Verify interface compliance
var _ agent.Tool = (*SummarizeChannelTool)(nil)
