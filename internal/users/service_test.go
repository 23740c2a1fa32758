package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, repo *MemoryRepo, email, password string, admin bool, modelID string) User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := User{
		ID:           "u-" + email,
		Username:     "user",
		Email:        email,
		PasswordHash: string(hash),
		Admin:        admin,
		ModelID:      modelID,
	}
	repo.Users = append(repo.Users, u)
	return u
}

func TestAuthenticate_Succeeds(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "a@example.com", "pw", true, "model-1")
	svc := NewService(repo)

	u, err := svc.Authenticate(context.Background(), "a@example.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if !u.Admin || u.ModelID != "model-1" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAuthenticate_EmailIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "a@example.com", "pw", false, "")
	svc := NewService(repo)

	if _, err := svc.Authenticate(context.Background(), "A@Example.COM", "pw"); err != nil {
		t.Fatalf("authenticate: %v", err)
	}
}

func TestAuthenticate_CollapsesFailureModes(t *testing.T) {
	repo := NewMemoryRepo()
	seedUser(t, repo, "a@example.com", "pw", false, "")
	svc := NewService(repo)

	if _, err := svc.Authenticate(context.Background(), "a@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "missing@example.com", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must be indistinguishable: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty credentials: %v", err)
	}
}

func TestProfileByID(t *testing.T) {
	repo := NewMemoryRepo()
	u := seedUser(t, repo, "a@example.com", "pw", true, "model-1")
	svc := NewService(repo)

	p, err := svc.ProfileByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Username != "user" || !p.Admin || p.ModelID != "model-1" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestUpdateGoogleTokens(t *testing.T) {
	repo := NewMemoryRepo()
	u := seedUser(t, repo, "a@example.com", "pw", false, "")
	svc := NewService(repo)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0) }

	tokens := GoogleTokens{AccessToken: "at", RefreshToken: "rt", Expiry: time.Unix(1700003600, 0)}
	if err := svc.UpdateGoogleTokens(context.Background(), u.ID, tokens); err != nil {
		t.Fatalf("update: %v", err)
	}

	stored, _ := repo.FindByID(context.Background(), u.ID)
	if stored.GoogleAccessToken != "at" || stored.GoogleRefreshToken != "rt" {
		t.Fatalf("tokens not stored: %+v", stored)
	}

	if err := svc.UpdateGoogleTokens(context.Background(), u.ID, GoogleTokens{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty access token must be rejected: %v", err)
	}
	if err := svc.UpdateGoogleTokens(context.Background(), "nope", tokens); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
}
