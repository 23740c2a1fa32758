package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Tenancy invariant: ModelID scopes every call-data fetch; it may legitimately
// be empty for accounts that have no calling model assigned yet, which is a
// displayable state rather than an auth failure.
type Claims struct {
	jwt.RegisteredClaims

	UserID  string `json:"user_id"`
	ModelID string `json:"model_id"`
	Admin   bool   `json:"admin"`
}
