package conversations

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

// Repository abstracts conversation persistence.
// Implementations must enforce model_id filtering.
type Repository interface {
	ListByModelID(ctx context.Context, modelID string) ([]Conversation, error)
}

// PostgresRepo reads conversations from Postgres (pgx stdlib driver).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) ListByModelID(ctx context.Context, modelID string) ([]Conversation, error) {
	if modelID == "" {
		return nil, errors.New("model_id required")
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, model_id, coalesce(call_id, ''), phone_number_from,
		       coalesce(transcript, ''), started_at, created_at
		FROM conversations
		WHERE model_id = $1
		ORDER BY started_at DESC`,
		modelID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Conversation, 0)
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.ModelID, &c.CallID, &c.PhoneNumberFrom, &c.Transcript, &c.StartedAt, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu            sync.Mutex
	Conversations []Conversation
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) ListByModelID(ctx context.Context, modelID string) ([]Conversation, error) {
	if modelID == "" {
		return nil, errors.New("model_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Conversation, 0)
	for _, c := range r.Conversations {
		if c.ModelID == modelID {
			out = append(out, c)
		}
	}
	return out, nil
}
