package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ideaonaction/minu-sso/internal/application"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/auth"
	"go.uber.org/zap"
)

// AuthorizeHandler handles GET /oauth/authorize
type AuthorizeHandler struct {
	authorizeService *application.AuthorizeService
	authMiddleware   *auth.AuthMiddleware
	loginURL         string
	logger           *zap.Logger
}

func NewAuthorizeHandler(
	authorizeService *application.AuthorizeService,
	authMiddleware *auth.AuthMiddleware,
	loginURL string,
	logger *zap.Logger,
) *AuthorizeHandler {
	return &AuthorizeHandler{
		authorizeService: authorizeService,
		authMiddleware:   authMiddleware,
		loginURL:         loginURL,
		logger:           logger,
	}
}

// Authorize validates the request, then either redirects an unauthenticated
// browser to the login surface with the full query preserved, or issues a
// code and redirects to the client's callback. Validation failures are
// answered directly with 400, never by redirecting to the presented URI.
func (h *AuthorizeHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := application.AuthorizeRequest{
		ClientID:            query.Get("client_id"),
		RedirectURI:         query.Get("redirect_uri"),
		ResponseType:        query.Get("response_type"),
		Scope:               splitScope(query.Get("scope")),
		State:               query.Get("state"),
		CodeChallenge:       query.Get("code_challenge"),
		CodeChallengeMethod: query.Get("code_challenge_method"),
	}

	if _, err := h.authorizeService.ValidateRequest(r.Context(), req); err != nil {
		h.logger.Warn("Authorization request rejected",
			zap.String("client_id", req.ClientID),
			zap.Error(err))
		httperrors.RespondWithOAuthError(w, err)
		return
	}

	userID, authenticated := h.authMiddleware.Authenticate(r)
	if !authenticated {
		// Preserve every query param so the flow resumes after login.
		http.Redirect(w, r, h.loginURL+"?"+r.URL.RawQuery, http.StatusFound)
		return
	}

	code, err := h.authorizeService.GenerateAuthorizationCode(r.Context(), req, userID)
	if err != nil {
		h.logger.Error("Failed to generate authorization code", zap.Error(err))
		httperrors.RespondWithOAuthError(w, err)
		return
	}

	callback, err := url.Parse(req.RedirectURI)
	if err != nil {
		httperrors.RespondWithOAuthError(w, err)
		return
	}
	params := callback.Query()
	params.Set("code", code)
	if req.State != "" {
		params.Set("state", req.State)
	}
	callback.RawQuery = params.Encode()

	http.Redirect(w, r, callback.String(), http.StatusFound)
}

func splitScope(scope string) []string {
	if scope == "" {
		return nil
	}
	return strings.Fields(scope)
}
