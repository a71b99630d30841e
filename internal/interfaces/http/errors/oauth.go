package errors

import (
	"encoding/json"
	"net/http"

	"github.com/ideaonaction/minu-sso/internal/domain"
)

// RespondWithOAuthError writes an RFC 6749 error body. Status is derived
// from the error code: invalid_client is 401 with the required
// WWW-Authenticate header, server_error is 500, everything else 400.
func RespondWithOAuthError(w http.ResponseWriter, err error) {
	oauthErr := domain.AsOAuthError(err)

	status := http.StatusBadRequest
	switch oauthErr.Code {
	case domain.OAuthErrInvalidClient:
		status = http.StatusUnauthorized
		w.Header().Set("WWW-Authenticate", `Basic realm="minu-sso"`)
	case domain.OAuthErrServerError:
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(oauthErr)
}
