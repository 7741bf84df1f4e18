package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/model"
	pkgLog "pulse-assistant/pkg/log"
	"pulse-assistant/pkg/webdoc"
)

// AnalyzeDocTool fetches a remote document as plain text so the model
// can answer a question about it. The tool only retrieves; the reading
// is done by the final completion.
type AnalyzeDocTool struct {
	retriever webdoc.IRetriever
	l         pkgLog.Logger
}

// NewAnalyzeDocTool creates a new document analysis tool.
func NewAnalyzeDocTool(retriever webdoc.IRetriever, l pkgLog.Logger) agent.Tool {
	return &AnalyzeDocTool{retriever: retriever, l: l}
}

func (t *AnalyzeDocTool) Name() string {
	return "analyze_doc"
}

func (t *AnalyzeDocTool) Description() string {
	return "Fetch a document from an http(s) URL as plain text to answer a question about its content."
}

func (t *AnalyzeDocTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "http(s) URL of the document",
			},
			"query": map[string]interface{}{
				"type":        "string",
				"description": "What the user wants to know about the document",
			},
		},
		"required": []string{"path", "query"},
	}
}

// AnalyzeDocInput mirrors the Parameters schema.
type AnalyzeDocInput struct {
	Path  string `json:"path"`
	Query string `json:"query"`
}

func (t *AnalyzeDocTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	var input AnalyzeDocInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if input.Path == "" {
		return nil, fmt.Errorf("path parameter is required")
	}

	t.l.Infof(ctx, "analyze_doc: user %d fetching %s", sc.UserID, input.Path)

	text, err := t.retriever.FetchText(ctx, input.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("document at %s has no readable text", input.Path)
	}

	return fmt.Sprintf("Document content (question: %s):\n\n%s", input.Query, text), nil
}

// Verify interface compliance
var _ agent.Tool = (*AnalyzeDocTool)(nil)
