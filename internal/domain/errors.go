package domain

import "errors"

var (
	// ErrClientNotFound is returned when no client matches the given client_id
	ErrClientNotFound = errors.New("client not found")

	// ErrClientInactive is returned when the client exists but is disabled
	ErrClientInactive = errors.New("client is not active")

	// ErrInvalidClientSecret is returned when the presented secret does not match
	ErrInvalidClientSecret = errors.New("invalid client secret")

	// ErrInvalidRedirectURI is returned when the redirect URI is not registered
	ErrInvalidRedirectURI = errors.New("redirect uri is not registered for client")

	// ErrInvalidScope is returned when a requested scope is not registered
	ErrInvalidScope = errors.New("scope is not registered for client")

	// ErrInvalidAuthorizationCode is returned when a code is unknown or already used
	ErrInvalidAuthorizationCode = errors.New("invalid authorization code")

	// ErrAuthorizationCodeExpired is returned when a code is past its expiry
	ErrAuthorizationCodeExpired = errors.New("authorization code expired")

	// ErrInvalidCodeChallengeMethod is returned for any PKCE method other than S256
	ErrInvalidCodeChallengeMethod = errors.New("invalid code challenge method")

	// ErrInvalidCodeVerifier is returned when the verifier does not match the challenge
	ErrInvalidCodeVerifier = errors.New("code verifier does not match challenge")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrTokenNotFound is returned when no stored token matches the raw string
	ErrTokenNotFound = errors.New("token not found")

	// ErrUserNotFound is returned when no user matches the credentials
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when credentials are invalid
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrServiceNotFound is returned when a service record is missing
	ErrServiceNotFound = errors.New("service not found")

	// ErrSubscriptionNotFound is returned when no subscription row exists
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrInternal is returned when there is an internal server error
	ErrInternal = errors.New("internal server error")
)
