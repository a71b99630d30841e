package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ideaonaction/minu-sso/internal/application"
	"github.com/ideaonaction/minu-sso/internal/domain"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

const maxTokenBodySize = 32 * 1024 // 32KB

// TokenHandler handles POST /oauth/token
type TokenHandler struct {
	tokenService *application.TokenService
	logger       *zap.Logger
}

func NewTokenHandler(tokenService *application.TokenService, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		logger:       logger,
	}
}

// Token dispatches on grant_type. The body is always form-encoded per
// RFC 6749; success responses carry no-store headers.
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTokenBodySize)
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		h.logger.Error("Failed to parse token request form", zap.Error(err))
		httperrors.RespondWithOAuthError(w, domain.NewOAuthError(domain.OAuthErrInvalidRequest, "malformed request body"))
		return
	}

	var (
		resp *domain.TokenResponse
		err  error
	)

	grantType := r.PostForm.Get("grant_type")
	switch grantType {
	case "authorization_code":
		resp, err = h.tokenService.ExchangeAuthorizationCode(r.Context(), application.ExchangeCodeRequest{
			Code:         r.PostForm.Get("code"),
			ClientID:     r.PostForm.Get("client_id"),
			ClientSecret: r.PostForm.Get("client_secret"),
			RedirectURI:  r.PostForm.Get("redirect_uri"),
			CodeVerifier: r.PostForm.Get("code_verifier"),
		})
	case "refresh_token":
		resp, err = h.tokenService.RefreshAccessToken(r.Context(), application.RefreshRequest{
			RefreshToken: r.PostForm.Get("refresh_token"),
			ClientID:     r.PostForm.Get("client_id"),
			ClientSecret: r.PostForm.Get("client_secret"),
		})
	default:
		h.logger.Warn("Unsupported grant type", zap.String("grant_type", grantType))
		httperrors.RespondWithOAuthError(w, domain.NewOAuthError(domain.OAuthErrUnsupportedGrantType, "grant_type must be authorization_code or refresh_token"))
		return
	}

	if err != nil {
		h.logger.Warn("Token request rejected",
			zap.String("grant_type", grantType),
			zap.Error(err))
		httperrors.RespondWithOAuthError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	json.NewEncoder(w).Encode(resp)
}
