package users

import "time"

// User is an account row.
//
// Tenancy: ModelID links an admin account to its subset of call records.
// It defaults to empty, which is a valid "no model ID set" state.
//
// PasswordHash is a bcrypt hash; the plaintext never leaves the login handler.
type User struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Admin        bool   `json:"admin" db:"admin"`
	ModelID      string `json:"model_id" db:"model_id"`

	// Google Calendar token triple, stored verbatim from the OAuth popup flow.
	GoogleAccessToken  string    `json:"-" db:"google_access_token"`
	GoogleRefreshToken string    `json:"-" db:"google_refresh_token"`
	GoogleTokenExpiry  time.Time `json:"-" db:"google_token_expiry"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Profile is the identity shape returned to the client.
type Profile struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	ModelID  string `json:"model_id"`
}

func (u User) Profile() Profile {
	return Profile{Username: u.Username, Admin: u.Admin, ModelID: u.ModelID}
}

// GoogleTokens is the triple the calendar integration stores per user.
type GoogleTokens struct {
	AccessToken  string    `json:"googleAccessToken"`
	RefreshToken string    `json:"googleRefreshToken"`
	Expiry       time.Time `json:"googleTokenExpiry"`
}
