package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/log"
)

// Dispatcher resolves the tool calls a completion requested. Failures
// never bubble up: an unknown tool, a malformed argument string, or a
// handler error all become the tool result text so the model can read
// the problem and recover in the final completion.
type Dispatcher struct {
	registry *ToolRegistry
	l        log.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *ToolRegistry, l log.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, l: l}
}

// Dispatch runs every call sequentially in the order the model issued
// them and returns one tool turn per call.
func (d *Dispatcher) Dispatch(ctx context.Context, sc model.Scope, calls []model.ToolCall) []model.Turn {
	turns := make([]model.Turn, 0, len(calls))
	for _, call := range calls {
		turns = append(turns, model.Turn{
			Role:       model.RoleTool,
			Content:    d.dispatchOne(ctx, sc, call),
			ToolCallID: call.ID,
		})
	}
	return turns
}

func (d *Dispatcher) dispatchOne(ctx context.Context, sc model.Scope, call model.ToolCall) string {
	tool, ok := d.registry.Get(call.Name)
	if !ok {
		d.l.Warnf(ctx, "agent: model requested unknown tool %q", call.Name)
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	params := map[string]interface{}{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &params); err != nil {
			d.l.Warnf(ctx, "agent: tool %s got malformed arguments: %v", call.Name, err)
			return fmt.Sprintf("Error: invalid arguments for %s: %v", call.Name, err)
		}
	}

	result, err := tool.Execute(ctx, sc, params)
	if err != nil {
		d.l.Errorf(ctx, "agent: tool %s failed: %v", call.Name, err)
		return fmt.Sprintf("Error: %v", err)
	}

	return renderResult(result)
}

// renderResult flattens a tool's return value into the text the model
// reads. Strings pass through; everything else is JSON-encoded.
func renderResult(result interface{}) string {
	switch v := result.(type) {
	case nil:
		return "done"
	case string:
		return v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
