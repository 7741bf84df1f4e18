package postgre

import (
	"context"
	"database/sql"
	"encoding/json"

	repo "pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
)

// GetSession retrieves the session row for a user.
// Returns zero-value Session when not found, do NOT return error for not-found.
func (r *implRepository) GetSession(ctx context.Context, userID int64) (model.Session, error) {
	const query = `
		SELECT user_id, history, chat_model, image_model, persona
		FROM chat_sessions WHERE user_id = $1`

	var (
		session model.Session
		rawHist []byte
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&session.UserID, &rawHist, &session.ChatModel, &session.ImageModel, &session.Persona,
	)
	if err == sql.ErrNoRows {
		return model.Session{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetSession"), err)
		return model.Session{}, repo.ErrFailedToGet
	}

	if len(rawHist) > 0 {
		if err := json.Unmarshal(rawHist, &session.History); err != nil {
			// A corrupt history document should not brick the user:
			// log it and start the window over.
			r.l.Errorf(ctx, "%s: corrupt history for user %d: %v", r.dsn("GetSession"), userID, err)
			session.History = nil
		}
	}
	return session, nil
}

// SaveHistory replaces the stored conversation window, creating the row
// when it does not exist yet.
func (r *implRepository) SaveHistory(ctx context.Context, userID int64, history []model.Turn) error {
	raw, err := json.Marshal(history)
	if err != nil {
		r.l.Errorf(ctx, "%s: marshal: %v", r.dsn("SaveHistory"), err)
		return repo.ErrFailedToUpdate
	}

	const query = `
		INSERT INTO chat_sessions (user_id, history, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET history = EXCLUDED.history, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, raw); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveHistory"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

// ClearHistory empties the conversation window only; model and persona
// settings survive.
func (r *implRepository) ClearHistory(ctx context.Context, userID int64) error {
	const query = `
		UPDATE chat_sessions
		SET history = '[]'::jsonb, updated_at = NOW()
		WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ClearHistory"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

func (r *implRepository) SetChatModel(ctx context.Context, userID int64, chatModel string) error {
	return r.setField(ctx, "SetChatModel", "chat_model", userID, chatModel)
}

func (r *implRepository) SetImageModel(ctx context.Context, userID int64, imageModel string) error {
	return r.setField(ctx, "SetImageModel", "image_model", userID, imageModel)
}

func (r *implRepository) SetPersona(ctx context.Context, userID int64, persona string) error {
	return r.setField(ctx, "SetPersona", "persona", userID, persona)
}

// setField upserts a single settings column. The column name comes from
// a fixed call site, never from user input.
func (r *implRepository) setField(ctx context.Context, method, column string, userID int64, value string) error {
	query := `
		INSERT INTO chat_sessions (user_id, ` + column + `, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET ` + column + ` = EXCLUDED.` + column + `, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, userID, value); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}
