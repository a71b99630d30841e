package domain

import (
	"context"
	"time"
)

// AuthorizationCodeTTL is the lifetime of an authorization code.
const AuthorizationCodeTTL = 10 * time.Minute

// CodeChallengeMethodS256 is the only accepted PKCE challenge method.
const CodeChallengeMethodS256 = "S256"

// AuthorizationCode represents a short-lived single-use OAuth2 authorization code.
// UsedAt is set atomically on first redemption; a second redemption must fail.
type AuthorizationCode struct {
	ID                  string     `json:"id"`
	Code                string     `json:"code"`
	ClientID            string     `json:"client_id"`
	UserID              string     `json:"user_id"`
	Scopes              []string   `json:"scopes"`
	CodeChallenge       string     `json:"code_challenge"`
	CodeChallengeMethod string     `json:"code_challenge_method"`
	RedirectURI         string     `json:"redirect_uri"`
	ExpiresAt           time.Time  `json:"expires_at"`
	UsedAt              *time.Time `json:"used_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *AuthorizationCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// AuthorizationCodeRepository defines the interface for authorization code data access
type AuthorizationCodeRepository interface {
	// CreateAuthorizationCode creates a new authorization code
	CreateAuthorizationCode(ctx context.Context, code *AuthorizationCode) error

	// GetAuthorizationCode gets an authorization code by its code string
	GetAuthorizationCode(ctx context.Context, code string) (*AuthorizationCode, error)

	// UseAuthorizationCode marks the code used if and only if it has not been
	// used before. Returns true when this call won the redemption.
	UseAuthorizationCode(ctx context.Context, code string) (bool, error)
}
