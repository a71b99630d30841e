package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ideaonaction/minu-sso/internal/application"
	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/token"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/auth"
	"go.uber.org/zap"
)

// LoginResponse carries the session token issued after authentication.
type LoginResponse struct {
	SessionToken string       `json:"session_token"`
	User         *domain.User `json:"user"`
}

// AuthHandler handles the login surface fronting /oauth/authorize
type AuthHandler struct {
	loginService    *application.LoginService
	signer          *token.Signer
	sessionDuration time.Duration
	logger          *zap.Logger
}

func NewAuthHandler(loginService *application.LoginService, signer *token.Signer, sessionDuration time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		loginService:    loginService,
		signer:          signer,
		sessionDuration: sessionDuration,
		logger:          logger,
	}
}

// LoginHandler authenticates the user and sets the session cookie that
// /oauth/authorize accepts when resuming an authorization flow.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInvalidRequest, "Invalid request body", nil, http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Email and password are required", nil, http.StatusBadRequest)
		return
	}

	user, err := h.loginService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login rejected", zap.String("email", req.Email))
		httperrors.RespondWithError(w, httperrors.ErrCodeAuthentication, "Invalid credentials", nil, http.StatusUnauthorized)
		return
	}

	session, err := h.signer.SignSession(user.ID, h.sessionDuration)
	if err != nil {
		h.logger.Error("Failed to sign session token", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to create session", nil, http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    session,
		Path:     "/",
		MaxAge:   int(h.sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(LoginResponse{
		SessionToken: session,
		User:         user,
	})
}
