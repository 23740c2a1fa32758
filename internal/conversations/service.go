package conversations

import (
	"context"
	"errors"
)

var ErrNoModelID = errors.New("conversations: no model ID configured")

// Service exposes the admin conversations listing.
// Admin gating happens at the HTTP layer (internal/rbac); the service only
// enforces tenancy.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

// ListForModel returns the conversations for one model_id. An empty model_id
// is the "no model ID configured" state, reported distinctly so the handler
// does not conflate it with access denial.
func (s *Service) ListForModel(ctx context.Context, modelID string) ([]Conversation, error) {
	if modelID == "" {
		return nil, ErrNoModelID
	}
	if s.repo == nil {
		return nil, errors.New("conversations: repository not configured")
	}
	return s.repo.ListByModelID(ctx, modelID)
}
