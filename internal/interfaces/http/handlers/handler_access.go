package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ideaonaction/minu-sso/internal/application"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/auth"
	"go.uber.org/zap"
)

// AccessHandler handles GET /api/services/{serviceID}/access, the endpoint
// the client-side entitlement cache consumes.
type AccessHandler struct {
	entitlementService *application.EntitlementService
	logger             *zap.Logger
}

func NewAccessHandler(entitlementService *application.EntitlementService, logger *zap.Logger) *AccessHandler {
	return &AccessHandler{
		entitlementService: entitlementService,
		logger:             logger,
	}
}

// GetAccessHandler returns the access decision for the authenticated user.
// Denials are 200 responses; only transport and storage failures are errors.
func (h *AccessHandler) GetAccessHandler(w http.ResponseWriter, r *http.Request) {
	serviceID := chi.URLParam(r, "serviceID")
	if serviceID == "" {
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Service ID is required", nil, http.StatusBadRequest)
		return
	}

	userID, ok := auth.UserID(r.Context())
	if !ok {
		httperrors.RespondWithError(w, httperrors.ErrCodeAuthentication, "User not authenticated", nil, http.StatusUnauthorized)
		return
	}

	permission := r.URL.Query().Get("permission")

	decision, err := h.entitlementService.EvaluateAccess(r.Context(), userID, serviceID, permission)
	if err != nil {
		h.logger.Error("Failed to evaluate access",
			zap.String("user_id", userID),
			zap.String("service_id", serviceID),
			zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to evaluate access", nil, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decision)
}
