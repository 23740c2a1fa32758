package auth

import (
	"context"
	"errors"
)

// Session is the request-scoped identity. It replaces ambient token storage:
// it is created when the access token is verified and injected into every
// data-fetch call that needs tenant scoping.
type Session struct {
	UserID  string
	ModelID string
	Admin   bool

	// TokenID is the token's jti: one value per login, so it doubles as the
	// browsing-session key for session-scoped state.
	TokenID string
}

type ctxKey int

const ctxSession ctxKey = iota

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxSession, s)
}

func SessionFrom(ctx context.Context) (Session, error) {
	if s, ok := ctx.Value(ctxSession).(Session); ok && s.UserID != "" {
		return s, nil
	}
	return Session{}, errors.New("session not in context")
}
