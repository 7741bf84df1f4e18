package usecase

import (
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/llmprovider"
)

// buildContext assembles the completion window for one round: the
// rewritten system turn at index 0, then at most K stored turns, then
// the new user turn. Pure; the session is not mutated.
func (uc *implUseCase) buildContext(session model.Session, facts []model.MemoryFact, userText string) []model.Turn {
	system := model.Turn{
		Role:    model.RoleSystem,
		Content: uc.systemPrompt(session.Persona, facts),
	}

	history := session.History
	if len(history) > 0 && history[0].Role == model.RoleSystem {
		history = history[1:]
	}
	history = trimWindow(history, uc.cfg.HistoryWindow)

	turns := make([]model.Turn, 0, len(history)+2)
	turns = append(turns, system)
	turns = append(turns, history...)
	turns = append(turns, model.Turn{Role: model.RoleUser, Content: userText})
	return turns
}

// capHistory trims a finished round to what gets persisted: the system
// turn plus the last K turns.
func capHistory(turns []model.Turn, k int) []model.Turn {
	if len(turns) == 0 {
		return turns
	}

	var system []model.Turn
	rest := turns
	if turns[0].Role == model.RoleSystem {
		system = turns[:1]
		rest = turns[1:]
	}
	rest = trimWindow(rest, k)

	out := make([]model.Turn, 0, len(system)+len(rest))
	out = append(out, system...)
	out = append(out, rest...)
	return out
}

// trimWindow keeps the last k turns. Tool turns left at the head after
// the cut lost the assistant turn that carried their tool_calls; the
// completions API rejects a window starting with such an orphan, so
// they are dropped too.
func trimWindow(history []model.Turn, k int) []model.Turn {
	if len(history) > k {
		history = history[len(history)-k:]
	}
	for len(history) > 0 && history[0].Role == model.RoleTool {
		history = history[1:]
	}
	return history
}

// toMessages converts stored turns to the provider wire shape. The two
// ToolCall types are field-identical, so a direct conversion works.
func toMessages(turns []model.Turn) []llmprovider.Message {
	msgs := make([]llmprovider.Message, 0, len(turns))
	for _, t := range turns {
		calls := make([]llmprovider.ToolCall, 0, len(t.ToolCalls))
		for _, c := range t.ToolCalls {
			calls = append(calls, llmprovider.ToolCall(c))
		}
		if len(calls) == 0 {
			calls = nil
		}
		msgs = append(msgs, llmprovider.Message{
			Role:       t.Role,
			Content:    t.Content,
			ToolCalls:  calls,
			ToolCallID: t.ToolCallID,
		})
	}
	return msgs
}

// toModelCalls converts provider tool calls into the stored form.
func toModelCalls(calls []llmprovider.ToolCall) []model.ToolCall {
	out := make([]model.ToolCall, 0, len(calls))
	for _, c := range calls {
		out = append(out, model.ToolCall(c))
	}
	return out
}
