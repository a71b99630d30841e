package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ideaonaction/minu-sso/internal/domain"
	httperrors "github.com/ideaonaction/minu-sso/internal/interfaces/http/errors"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ClientRequest represents the request to create/update an OAuth client
type ClientRequest struct {
	ClientID     string   `json:"client_id" validate:"required"`
	ClientSecret string   `json:"client_secret" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	RedirectURIs []string `json:"redirect_uris" validate:"required,min=1"`
	Scopes       []string `json:"scopes" validate:"required,min=1"`
}

// ClientHandler handles OAuth client management
type ClientHandler struct {
	clientRepo domain.ClientRepository
	logger     *zap.Logger
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientRepo domain.ClientRepository, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// CreateClientHandler handles the registration of a new OAuth client
func (h *ClientHandler) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInvalidRequest, "Invalid request body", nil, http.StatusBadRequest)
		return
	}

	if err := validateClientRequest(req); err != nil {
		h.logger.Error("Invalid request", zap.Any("validation_errors", err))
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Validation failed", err.ToErrorDetails(), http.StatusBadRequest)
		return
	}

	// Check if client already exists
	existingClient, err := h.clientRepo.FindClientByClientID(r.Context(), req.ClientID)
	if err == nil && existingClient != nil {
		h.logger.Error("Client already exists", zap.String("client_id", req.ClientID))
		httperrors.RespondWithError(w, httperrors.ErrCodeConflict, "Client already exists", nil, http.StatusConflict)
		return
	}

	client := &domain.OAuthClient{
		ID:           ulid.Make().String(),
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		Name:         req.Name,
		RedirectURIs: req.RedirectURIs,
		Scopes:       req.Scopes,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.clientRepo.CreateClient(r.Context(), client); err != nil {
		h.logger.Error("Failed to create OAuth client", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to create OAuth client", nil, http.StatusInternalServerError)
		return
	}

	h.logger.Info("OAuth client created successfully", zap.String("client_id", client.ClientID))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

// UpdateClientHandler handles updating an existing OAuth client
func (h *ClientHandler) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		h.logger.Error("Missing client ID in URL")
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Client ID is required", nil, http.StatusBadRequest)
		return
	}

	var req ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request body", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInvalidRequest, "Invalid request body", nil, http.StatusBadRequest)
		return
	}

	if err := validateClientRequest(req); err != nil {
		h.logger.Error("Invalid request", zap.Any("validation_errors", err))
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Validation failed", err.ToErrorDetails(), http.StatusBadRequest)
		return
	}

	existingClient, err := h.clientRepo.FindClientByClientID(r.Context(), clientID)
	if err != nil {
		h.logger.Error("Failed to find client", zap.String("client_id", clientID), zap.Error(err))
		if err == domain.ErrClientNotFound {
			httperrors.RespondWithError(w, httperrors.ErrCodeNotFound, "Client not found", nil, http.StatusNotFound)
		} else {
			httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to find client", nil, http.StatusInternalServerError)
		}
		return
	}

	existingClient.ClientSecret = req.ClientSecret
	existingClient.Name = req.Name
	existingClient.RedirectURIs = req.RedirectURIs
	existingClient.Scopes = req.Scopes
	existingClient.UpdatedAt = time.Now()

	if err := h.clientRepo.UpdateClient(r.Context(), existingClient); err != nil {
		h.logger.Error("Failed to update OAuth client", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to update OAuth client", nil, http.StatusInternalServerError)
		return
	}

	h.logger.Info("OAuth client updated successfully", zap.String("client_id", clientID))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existingClient)
}

// DeactivateClientHandler disables an OAuth client. Client rows are retired,
// never deleted, so issued tokens keep their audit trail.
func (h *ClientHandler) DeactivateClientHandler(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		h.logger.Error("Missing client ID in URL")
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Client ID is required", nil, http.StatusBadRequest)
		return
	}

	_, err := h.clientRepo.FindClientByClientID(r.Context(), clientID)
	if err != nil {
		h.logger.Error("Failed to find client", zap.String("client_id", clientID), zap.Error(err))
		if err == domain.ErrClientNotFound {
			httperrors.RespondWithError(w, httperrors.ErrCodeNotFound, "Client not found", nil, http.StatusNotFound)
		} else {
			httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to find client", nil, http.StatusInternalServerError)
		}
		return
	}

	if err := h.clientRepo.DeactivateClient(r.Context(), clientID); err != nil {
		h.logger.Error("Failed to deactivate OAuth client", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to deactivate OAuth client", nil, http.StatusInternalServerError)
		return
	}

	h.logger.Info("OAuth client deactivated successfully", zap.String("client_id", clientID))

	w.WriteHeader(http.StatusNoContent)
}

// ListClientsHandler handles listing all OAuth clients
func (h *ClientHandler) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientRepo.ListClients(r.Context())
	if err != nil {
		h.logger.Error("Failed to list OAuth clients", zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeInternal, "Failed to list OAuth clients", nil, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clients)
}

// GetClientHandler handles getting a single OAuth client
func (h *ClientHandler) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if clientID == "" {
		h.logger.Error("Missing client ID in URL")
		httperrors.RespondWithError(w, httperrors.ErrCodeValidation, "Client ID is required", nil, http.StatusBadRequest)
		return
	}

	client, err := h.clientRepo.FindClientByClientID(r.Context(), clientID)
	if err != nil {
		h.logger.Error("Failed to find client", zap.String("client_id", clientID), zap.Error(err))
		httperrors.RespondWithError(w, httperrors.ErrCodeNotFound, "Client not found", nil, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

// validateClientRequest validates the OAuth client request
func validateClientRequest(req ClientRequest) *httperrors.ValidationErrors {
	var errors httperrors.ValidationErrors

	if req.ClientID == "" {
		errors.Add("client_id", "Client ID is required")
	}
	if req.ClientSecret == "" {
		errors.Add("client_secret", "Client secret is required")
	}
	if req.Name == "" {
		errors.Add("name", "Client name is required")
	}
	if len(req.RedirectURIs) == 0 {
		errors.Add("redirect_uris", "At least one redirect URI is required")
	}
	if len(req.Scopes) == 0 {
		errors.Add("scopes", "At least one scope is required")
	}

	if errors.HasErrors() {
		return &errors
	}
	return nil
}
