package users

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = errors.New("users: not found")
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	ErrInvalidArgument    = errors.New("users: invalid argument")
)

// Service provides account operations.
type Service struct {
	repo Repository
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Authenticate verifies email/password and returns the user on success.
// Credential failures collapse into one error so the login message never
// reveals whether the email exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ProfileByID returns the client-facing identity shape.
func (s *Service) ProfileByID(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, ErrInvalidArgument
	}
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return u.Profile(), nil
}

// UpdateGoogleTokens stores the calendar OAuth token triple on the user row.
func (s *Service) UpdateGoogleTokens(ctx context.Context, userID string, tokens GoogleTokens) error {
	if userID == "" {
		return ErrInvalidArgument
	}
	if tokens.AccessToken == "" {
		return ErrInvalidArgument
	}
	return s.repo.SaveGoogleTokens(ctx, userID, tokens, s.clock().UTC())
}
