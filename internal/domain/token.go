package domain

import (
	"context"
	"time"
)

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = time.Hour

	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// TokenTypeBearer is the only token type this service issues.
	TokenTypeBearer = "Bearer"
)

// AccessToken represents an issued bearer access token. The raw token string
// is a signed JWT, but revocation and expiry are authoritative on the row,
// never on the signature alone.
type AccessToken struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	UserID      string     `json:"user_id"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	Scopes      []string   `json:"scopes"`
	ExpiresAt   time.Time  `json:"expires_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// RefreshToken represents an issued refresh token. Revoked is a tombstone;
// rows are never physically deleted so the audit trail survives rotation.
type RefreshToken struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id"`
	UserID       string     `json:"user_id"`
	RefreshToken string     `json:"refresh_token"`
	Scopes       []string   `json:"scopes"`
	ExpiresAt    time.Time  `json:"expires_at"`
	Revoked      bool       `json:"revoked"`
	ReplacedBy   *string    `json:"replaced_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastUsedAt   *time.Time `json:"last_used_at,omitempty"`
}

// Expired reports whether the refresh token is past its expiry.
func (t *RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// TokenResponse is the RFC 6749 token endpoint success body.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// TokenRepository defines the interface for access and refresh token data access
type TokenRepository interface {
	// CreateAccessToken stores a newly issued access token
	CreateAccessToken(ctx context.Context, token *AccessToken) error

	// GetAccessToken looks up an access token by its raw string
	GetAccessToken(ctx context.Context, raw string) (*AccessToken, error)

	// RevokeAccessToken marks an access token revoked by its raw string
	RevokeAccessToken(ctx context.Context, raw string) error

	// CreateRefreshToken stores a newly issued refresh token
	CreateRefreshToken(ctx context.Context, token *RefreshToken) error

	// GetRefreshToken looks up a refresh token by its raw string
	GetRefreshToken(ctx context.Context, raw string) (*RefreshToken, error)

	// RevokeRefreshToken tombstones a refresh token, optionally recording
	// the ID of the token that replaced it in a rotation
	RevokeRefreshToken(ctx context.Context, raw string, replacedBy *string) error

	// TouchRefreshToken updates last_used_at for a refresh token
	TouchRefreshToken(ctx context.Context, raw string) error
}
