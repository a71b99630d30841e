package domain

import "time"

// AccessTokenSigner signs access tokens. The signed string is what clients
// present as the bearer credential; the row in the token store stays the
// source of truth for revocation.
type AccessTokenSigner interface {
	// SignAccessToken produces a signed token string for the given claims.
	SignAccessToken(tokenID, userID, clientID string, scopes []string, expiresAt time.Time) (string, error)
}
