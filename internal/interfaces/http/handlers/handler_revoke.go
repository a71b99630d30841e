package handlers

import (
	"net/http"

	"github.com/ideaonaction/minu-sso/internal/application"
	"github.com/ideaonaction/minu-sso/internal/domain"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"go.uber.org/zap"
)

// RevokeHandler handles POST /oauth/revoke
type RevokeHandler struct {
	revokeService *application.RevokeService
	logger        *zap.Logger
}

func NewRevokeHandler(revokeService *application.RevokeService, logger *zap.Logger) *RevokeHandler {
	return &RevokeHandler{
		revokeService: revokeService,
		logger:        logger,
	}
}

// Revoke always answers 200 per RFC 7009 once the client is authenticated,
// whatever the state of the presented token.
func (h *RevokeHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTokenBodySize)
	defer r.Body.Close()

	if err := r.ParseForm(); err != nil {
		h.logger.Error("Failed to parse revoke request form", zap.Error(err))
		httperrors.RespondWithOAuthError(w, domain.NewOAuthError(domain.OAuthErrInvalidRequest, "malformed request body"))
		return
	}

	token := r.PostForm.Get("token")
	if token == "" {
		httperrors.RespondWithOAuthError(w, domain.NewOAuthError(domain.OAuthErrInvalidRequest, "token is required"))
		return
	}

	err := h.revokeService.Revoke(r.Context(), application.RevokeRequest{
		Token:         token,
		TokenTypeHint: r.PostForm.Get("token_type_hint"),
		ClientID:      r.PostForm.Get("client_id"),
		ClientSecret:  r.PostForm.Get("client_secret"),
	})
	if err != nil {
		// Only client authentication fails; token state never does.
		httperrors.RespondWithOAuthError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(http.StatusOK)
}
