package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/token"
	"go.uber.org/zap"
)

type contextKey string

// ContextKeyUserID carries the authenticated user's ID through the request context.
const ContextKeyUserID contextKey = "user_id"

// SessionCookieName is the cookie set by the login surface and read by
// /oauth/authorize.
const SessionCookieName = "minu_session"

// AuthMiddleware authenticates requests with a bearer token or session cookie.
// Bearer tokens are checked against the token store: a valid signature is not
// enough, the backing row must exist and not be revoked.
type AuthMiddleware struct {
	signer    *token.Signer
	tokenRepo domain.TokenRepository
	logger    *zap.Logger
}

func NewAuthMiddleware(signer *token.Signer, tokenRepo domain.TokenRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{signer: signer, tokenRepo: tokenRepo, logger: logger}
}

// Authenticator rejects requests without a valid bearer token or session cookie.
func (m *AuthMiddleware) Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.Authenticate(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticate resolves the caller's user ID from a bearer token or the
// session cookie, without writing a response. Used by /oauth/authorize,
// which redirects to login instead of returning 401.
func (m *AuthMiddleware) Authenticate(r *http.Request) (string, bool) {
	raw, fromBearer := m.extractToken(r)
	if raw == "" {
		return "", false
	}

	claims, err := m.signer.ParseAndVerify(raw)
	if err != nil {
		m.logger.Debug("Token verification failed", zap.Error(err))
		return "", false
	}
	if claims.Subject == "" {
		return "", false
	}

	// Access tokens live in the store and can be revoked; the signature alone
	// never authenticates them. Session cookies are signature-only.
	if fromBearer {
		stored, err := m.tokenRepo.GetAccessToken(r.Context(), raw)
		if err != nil {
			m.logger.Debug("Access token not found in store", zap.Error(err))
			return "", false
		}
		if stored.RevokedAt != nil {
			m.logger.Debug("Revoked access token presented",
				zap.String("token_id", stored.ID))
			return "", false
		}
	}

	return claims.Subject, true
}

// UserID extracts the authenticated user's ID from a request context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ContextKeyUserID).(string)
	return userID, ok && userID != ""
}

func (m *AuthMiddleware) extractToken(r *http.Request) (raw string, fromBearer bool) {
	bearToken := r.Header.Get("Authorization")
	if parts := strings.Split(bearToken, " "); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1], true
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value, false
	}
	return "", false
}
