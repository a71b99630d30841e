package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ideaonaction/minu-sso/internal/application"
	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/token"
	"github.com/ideaonaction/minu-sso/internal/interfaces/http/middleware/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func accessRouter(mockSubs *MockSubscriptionRepository, userID string) http.Handler {
	handler := NewAccessHandler(application.NewEntitlementService(mockSubs, zap.NewNop()), zap.NewNop())

	r := chi.NewRouter()
	if userID != "" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), auth.ContextKeyUserID, userID)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Get("/api/services/{serviceID}/access", handler.GetAccessHandler)
	return r
}

func TestAccessHandler_GrantedDecision(t *testing.T) {
	mockSubs := new(MockSubscriptionRepository)
	mockSubs.On("FindService", mock.Anything, "minu-find").Return(&domain.Service{
		ID: "minu-find", Name: "Minu Find", RequiredPlan: "premium",
	}, nil)
	mockSubs.On("FindSubscription", mock.Anything, "user-1", "minu-find").Return(&domain.Subscription{
		ID:               "sub-1",
		UserID:           "user-1",
		ServiceID:        "minu-find",
		Status:           domain.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/services/minu-find/access", nil)
	rec := httptest.NewRecorder()
	accessRouter(mockSubs, "user-1").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var decision domain.AccessDecision
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decision))
	assert.True(t, decision.HasAccess)
	assert.True(t, decision.HasPermission)
}

func TestAccessHandler_DenialIsStill200(t *testing.T) {
	mockSubs := new(MockSubscriptionRepository)
	mockSubs.On("FindService", mock.Anything, "minu-find").Return(&domain.Service{
		ID: "minu-find", Name: "Minu Find", RequiredPlan: "premium",
	}, nil)
	mockSubs.On("FindSubscription", mock.Anything, "user-1", "minu-find").
		Return(nil, domain.ErrSubscriptionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/services/minu-find/access?permission=read", nil)
	rec := httptest.NewRecorder()
	accessRouter(mockSubs, "user-1").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var decision domain.AccessDecision
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&decision))
	assert.False(t, decision.HasAccess)
	assert.Equal(t, domain.DenialSubscriptionRequired, decision.Reason)
}

func TestAccessHandler_RevokedBearerTokenIs401(t *testing.T) {
	signer, err := token.NewSigner("", "http://localhost:8080", zap.NewNop())
	require.NoError(t, err)

	raw, err := signer.SignAccessToken("token-1", "user-1", "minu-find-local",
		[]string{"profile"}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	// Revocation lives on the row; the JWT itself is still signed and unexpired.
	revokedAt := time.Now()
	mockTokens := new(MockTokenRepository)
	mockTokens.On("GetAccessToken", mock.Anything, raw).Return(&domain.AccessToken{
		ID:        "token-1",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
		RevokedAt: &revokedAt,
	}, nil)

	mockSubs := new(MockSubscriptionRepository)
	handler := NewAccessHandler(application.NewEntitlementService(mockSubs, zap.NewNop()), zap.NewNop())
	authMiddleware := auth.NewAuthMiddleware(signer, mockTokens, zap.NewNop())

	r := chi.NewRouter()
	r.Use(authMiddleware.Authenticator)
	r.Get("/api/services/{serviceID}/access", handler.GetAccessHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/services/minu-find/access", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockSubs.AssertNotCalled(t, "FindService", mock.Anything, mock.Anything)
	mockTokens.AssertExpectations(t)
}

func TestAccessHandler_UnauthenticatedIs401(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/services/minu-find/access", nil)
	rec := httptest.NewRecorder()
	accessRouter(new(MockSubscriptionRepository), "").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccessHandler_StorageErrorIs500(t *testing.T) {
	mockSubs := new(MockSubscriptionRepository)
	mockSubs.On("FindService", mock.Anything, "minu-find").Return(nil, domain.ErrInternal)

	req := httptest.NewRequest(http.MethodGet, "/api/services/minu-find/access", nil)
	rec := httptest.NewRecorder()
	accessRouter(mockSubs, "user-1").ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
