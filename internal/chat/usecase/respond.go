package usecase

import (
	"context"
	"errors"
	"strings"

	"pulse-assistant/internal/chat"
	"pulse-assistant/internal/model"
	"pulse-assistant/pkg/fallback"
	"pulse-assistant/pkg/llmprovider"
)

// degradedReply is what the user sees when every completion provider is
// exhausted. The round produces a reply either way; only the error path
// leaves history untouched.
const degradedReply = "I'm having trouble reaching my language models right now. Please try again in a minute."

// Respond runs one conversation round under the per-user lock: context
// assembly, the initial completion with the tool schema, sequential
// tool dispatch, and at most one final completion without the schema.
// History is persisted once, on the successful terminal path only.
func (uc *implUseCase) Respond(ctx context.Context, sc model.Scope, input chat.RespondInput) (chat.RespondOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return chat.RespondOutput{}, chat.ErrEmptyMessage
	}

	unlock := uc.locks.lock(sc.UserID)
	defer unlock()

	// A store outage degrades to a fresh session: the user still gets a
	// reply, nothing is persisted this round.
	degraded := false
	session, err := uc.repo.GetSession(ctx, sc.UserID)
	if err != nil {
		uc.l.Warnf(ctx, "chat: session load failed for user %d, degrading: %v", sc.UserID, err)
		degraded = true
		session = model.Session{UserID: sc.UserID}
	}
	facts, err := uc.repo.GetMemoryFacts(ctx, sc.UserID)
	if err != nil {
		uc.l.Warnf(ctx, "chat: memory load failed for user %d, degrading: %v", sc.UserID, err)
		degraded = true
		facts = nil
	}

	turns := uc.buildContext(session, facts, text)

	resp, err := uc.manager.GenerateContent(ctx, &llmprovider.Request{
		Model:       session.ChatModel,
		Messages:    toMessages(turns),
		Tools:       uc.registry.ToFunctionDefinitions(),
		ToolChoice:  "auto",
		Temperature: uc.cfg.Temperature,
	})
	if err != nil {
		return uc.completionFailed(ctx, sc, err)
	}

	if len(resp.Message.ToolCalls) > 0 {
		calls := toModelCalls(resp.Message.ToolCalls)

		// Keep the raw tool descriptors in the transcript so the final
		// completion sees what it asked for.
		turns = append(turns, model.Turn{
			Role:      model.RoleAssistant,
			Content:   resp.Message.Content,
			ToolCalls: calls,
		})
		turns = append(turns, uc.dispatcher.Dispatch(ctx, sc, calls)...)

		// Exactly one final completion, without the tool schema, so the
		// round cannot loop.
		resp, err = uc.manager.GenerateContent(ctx, &llmprovider.Request{
			Model:       session.ChatModel,
			Messages:    toMessages(turns),
			Temperature: uc.cfg.Temperature,
		})
		if err != nil {
			return uc.completionFailed(ctx, sc, err)
		}
	}

	reply := sanitize(resp.Message.Content)
	turns = append(turns, model.Turn{Role: model.RoleAssistant, Content: reply})

	if !degraded {
		if err := uc.repo.SaveHistory(ctx, sc.UserID, capHistory(turns, uc.cfg.HistoryWindow)); err != nil {
			uc.l.Errorf(ctx, "chat: history save failed for user %d: %v", sc.UserID, err)
		}
	}

	return chat.RespondOutput{Reply: reply, Model: resp.ModelName}, nil
}

// completionFailed maps provider-chain exhaustion to a calm user-facing
// reply; anything else (bad credentials, cancelled context) surfaces to
// the caller unchanged.
func (uc *implUseCase) completionFailed(ctx context.Context, sc model.Scope, err error) (chat.RespondOutput, error) {
	if errors.Is(err, fallback.ErrAllProvidersFailed) {
		uc.l.Errorf(ctx, "chat: all providers exhausted for user %d: %v", sc.UserID, err)
		return chat.RespondOutput{Reply: degradedReply}, nil
	}
	return chat.RespondOutput{}, err
}
