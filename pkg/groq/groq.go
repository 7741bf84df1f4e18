package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pulse-assistant/pkg/fallback"
)

// newGroqImpl creates a new Groq implementation.
func newGroqImpl(cfg Config) *groqImpl {
	return &groqImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a chat completion request to the Groq API.
func (g *groqImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	wireReq := g.transformRequest(req)

	body, err := json.Marshal(wireReq)
	if err != nil {
		return nil, fmt.Errorf("groq: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("groq: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		// Network failures and timeouts are retry-eligible.
		return nil, fmt.Errorf("groq: API call failed: %v: %w", err, fallback.ErrTransient)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, classifyStatus(resp.StatusCode, string(bodyBytes))
	}

	var wireResp wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wireResp); err != nil {
		return nil, fmt.Errorf("groq: failed to decode response: %w", err)
	}

	return g.transformResponse(&wireResp), nil
}

// Model returns the default model being used.
func (g *groqImpl) Model() string {
	return g.model
}

// classifyStatus maps an API error status to the fallback taxonomy:
// 429 rate-limited, 5xx transient (model loading, overloaded),
// everything else in 4xx non-retryable.
func classifyStatus(status int, body string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("groq: API error %d: %s: %w", status, body, fallback.ErrRateLimited)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("groq: API error %d: %s: %w", status, body, fallback.ErrTransient)
	default:
		return fmt.Errorf("groq: API error %d: %s: %w", status, body, fallback.ErrNonRetryable)
	}
}

// transformRequest converts a Request to the OpenAI-compatible wire form.
func (g *groqImpl) transformRequest(req *Request) *wireRequest {
	model := req.Model
	if model == "" {
		model = g.model
	}

	wireReq := &wireRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		ToolChoice:  req.ToolChoice,
		Messages:    make([]wireMessage, 0, len(req.Messages)),
	}

	for _, msg := range req.Messages {
		wm := wireMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
				ID:   call.ID,
				Type: "function",
				Function: wireFunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		wireReq.Messages = append(wireReq.Messages, wm)
	}

	for _, tool := range req.Tools {
		wireReq.Tools = append(wireReq.Tools, wireTool{
			Type: "function",
			Function: wireFunctionDecl{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	return wireReq
}

func (g *groqImpl) transformResponse(resp *wireResponse) *Response {
	if resp == nil || len(resp.Choices) == 0 {
		return &Response{Usage: &Usage{}}
	}

	choice := resp.Choices[0]
	message := Message{
		Role:       choice.Message.Role,
		Content:    choice.Message.Content,
		ToolCallID: choice.Message.ToolCallID,
	}

	for _, call := range choice.Message.ToolCalls {
		if call.Type != "function" {
			continue
		}
		message.ToolCalls = append(message.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}

	return &Response{
		Message: message,
		Model:   resp.Model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}
}
