package postgre

import (
	"context"

	repo "pulse-assistant/internal/chat/repository"
	"pulse-assistant/internal/model"
)

// AddMemoryFact appends a long-lived fact for the user.
func (r *implRepository) AddMemoryFact(ctx context.Context, userID int64, content string) error {
	const query = `INSERT INTO user_memories (user_id, content, created_at) VALUES ($1, $2, NOW())`

	if _, err := r.db.ExecContext(ctx, query, userID, content); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("AddMemoryFact"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// GetMemoryFacts returns all facts for the user, oldest first so the
// system-turn digest reads chronologically.
func (r *implRepository) GetMemoryFacts(ctx context.Context, userID int64) ([]model.MemoryFact, error) {
	const query = `
		SELECT id, user_id, content
		FROM user_memories
		WHERE user_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetMemoryFacts"), err)
		return nil, repo.ErrFailedToList
	}
	defer rows.Close()

	var facts []model.MemoryFact
	for rows.Next() {
		var f model.MemoryFact
		if err := rows.Scan(&f.ID, &f.UserID, &f.Content); err != nil {
			return nil, repo.ErrFailedToList
		}
		facts = append(facts, f)
	}
	return facts, nil
}

// ClearMemory removes every fact for the user.
func (r *implRepository) ClearMemory(ctx context.Context, userID int64) error {
	const query = `DELETE FROM user_memories WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ClearMemory"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}
