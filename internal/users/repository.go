package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"callcenter-platform/pkg/utils"
)

// Repository is the persistence contract for accounts.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	SaveGoogleTokens(ctx context.Context, userID string, tokens GoogleTokens, now time.Time) error
}

// PostgresRepo stores users in Postgres via database/sql (pgx stdlib driver).
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

const userColumns = `id, username, email, password_hash, admin, model_id,
	coalesce(google_access_token, ''), coalesce(google_refresh_token, ''),
	coalesce(google_token_expiry, 'epoch'::timestamptz), created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Admin, &u.ModelID,
		&u.GoogleAccessToken, &u.GoogleRefreshToken, &u.GoogleTokenExpiry,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *PostgresRepo) FindByID(ctx context.Context, id string) (User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// SaveGoogleTokens replaces the token triple for a user. Runs in a
// transaction so the existence check and the write observe the same row.
func (r *PostgresRepo) SaveGoogleTokens(ctx context.Context, userID string, tokens GoogleTokens, now time.Time) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE users
			SET google_access_token = $2,
			    google_refresh_token = $3,
			    google_token_expiry = $4,
			    updated_at = $5
			WHERE id = $1`,
			userID, tokens.AccessToken, tokens.RefreshToken, tokens.Expiry, now,
		)
		return err
	})
}

// MemoryRepo is an in-memory Repository for tests.
type MemoryRepo struct {
	mu    sync.Mutex
	Users []User
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) FindByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) SaveGoogleTokens(ctx context.Context, userID string, tokens GoogleTokens, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.Users {
		if r.Users[i].ID == userID {
			r.Users[i].GoogleAccessToken = tokens.AccessToken
			r.Users[i].GoogleRefreshToken = tokens.RefreshToken
			r.Users[i].GoogleTokenExpiry = tokens.Expiry
			r.Users[i].UpdatedAt = now
			return nil
		}
	}
	return ErrNotFound
}
