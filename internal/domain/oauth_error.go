package domain

// OAuthErrorCode is an RFC 6749 §5.2 error code.
type OAuthErrorCode string

const (
	OAuthErrInvalidRequest          OAuthErrorCode = "invalid_request"
	OAuthErrInvalidClient           OAuthErrorCode = "invalid_client"
	OAuthErrInvalidGrant            OAuthErrorCode = "invalid_grant"
	OAuthErrUnauthorizedClient      OAuthErrorCode = "unauthorized_client"
	OAuthErrUnsupportedGrantType    OAuthErrorCode = "unsupported_grant_type"
	OAuthErrUnsupportedResponseType OAuthErrorCode = "unsupported_response_type"
	OAuthErrInvalidScope            OAuthErrorCode = "invalid_scope"
	OAuthErrServerError             OAuthErrorCode = "server_error"
)

// OAuthError is a protocol-level error carried to the token, authorize and
// revoke endpoints. Internal storage errors are never wrapped directly; they
// are mapped to server_error so backend details cannot leak.
type OAuthError struct {
	Code        OAuthErrorCode `json:"error"`
	Description string         `json:"error_description,omitempty"`
}

func (e *OAuthError) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Description
}

// NewOAuthError creates a protocol error with a description.
func NewOAuthError(code OAuthErrorCode, description string) *OAuthError {
	return &OAuthError{Code: code, Description: description}
}

// AsOAuthError maps an arbitrary error to a protocol error. Known domain
// sentinels keep their RFC code; anything unexpected collapses to server_error.
func AsOAuthError(err error) *OAuthError {
	if err == nil {
		return nil
	}
	if oe, ok := err.(*OAuthError); ok {
		return oe
	}
	switch err {
	case ErrClientNotFound, ErrClientInactive, ErrInvalidClientSecret:
		return NewOAuthError(OAuthErrInvalidClient, err.Error())
	case ErrInvalidRedirectURI:
		return NewOAuthError(OAuthErrInvalidRequest, err.Error())
	case ErrInvalidScope:
		return NewOAuthError(OAuthErrInvalidScope, err.Error())
	case ErrInvalidAuthorizationCode, ErrAuthorizationCodeExpired,
		ErrInvalidCodeVerifier, ErrInvalidRefreshToken:
		return NewOAuthError(OAuthErrInvalidGrant, err.Error())
	case ErrInvalidCodeChallengeMethod:
		return NewOAuthError(OAuthErrInvalidRequest, err.Error())
	default:
		return NewOAuthError(OAuthErrServerError, "internal error")
	}
}
