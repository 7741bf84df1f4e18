package tools

import (
	"context"
	"fmt"
	"strconv"

	"pulse-assistant/internal/agent"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/mathexpr"
)

// CalculateMathTool evaluates arithmetic expressions. Only numbers and
// the operators + - * / ^ ( ) are accepted.
type CalculateMathTool struct{}

// NewCalculateMathTool creates a new math tool.
func NewCalculateMathTool() agent.Tool {
	return &CalculateMathTool{}
}

func (t *CalculateMathTool) Name() string {
	return "calculate_math"
}

func (t *CalculateMathTool) Description() string {
	return "Evaluate an arithmetic expression. Supports numbers, + - * / ^ and parentheses. Use for any calculation instead of doing the math yourself."
}

func (t *CalculateMathTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"expression": map[string]interface{}{
				"type":        "string",
				"description": "Arithmetic expression, e.g. \"(2 + 3) * 4^2\"",
			},
		},
		"required": []string{"expression"},
	}
}

func (t *CalculateMathTool) Execute(ctx context.Context, sc model.Scope, params map[string]interface{}) (interface{}, error) {
	expr, ok := params["expression"].(string)
	if !ok || expr == "" {
		return nil, fmt.Errorf("expression parameter is required")
	}

	result, err := mathexpr.Eval(expr)
	if err != nil {
		return nil, fmt.Errorf("cannot evaluate %q: %w", expr, err)
	}

	return fmt.Sprintf("%s = %s", expr, strconv.FormatFloat(result, 'f', -1, 64)), nil
}

// Verify interface compliance
var _ agent.Tool = (*CalculateMathTool)(nil)
