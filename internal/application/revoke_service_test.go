package application

import (
	"context"
	"testing"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRevokeService_Revoke(t *testing.T) {
	tests := []struct {
		name      string
		req       RevokeRequest
		setupMock func(*MockClientRepository, *MockTokenRepository)
		wantErr   error
	}{
		{
			name: "revokes a known access token",
			req: RevokeRequest{
				Token:        "token-1",
				ClientID:     "minu-find-local",
				ClientSecret: "secret",
			},
			setupMock: func(mc *MockClientRepository, mt *MockTokenRepository) {
				mc.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
				mt.On("RevokeAccessToken", mock.Anything, "token-1").Return(nil)
				mt.On("RevokeRefreshToken", mock.Anything, "token-1", (*string)(nil)).Return(nil)
			},
			wantErr: nil,
		},
		{
			name: "unknown token still succeeds",
			req: RevokeRequest{
				Token:        "ghost",
				ClientID:     "minu-find-local",
				ClientSecret: "secret",
			},
			setupMock: func(mc *MockClientRepository, mt *MockTokenRepository) {
				mc.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
				mt.On("RevokeAccessToken", mock.Anything, "ghost").Return(domain.ErrTokenNotFound)
				mt.On("RevokeRefreshToken", mock.Anything, "ghost", (*string)(nil)).Return(domain.ErrTokenNotFound)
			},
			wantErr: nil,
		},
		{
			name: "refresh hint tries both stores",
			req: RevokeRequest{
				Token:         "refresh-1",
				TokenTypeHint: "refresh_token",
				ClientID:      "minu-find-local",
				ClientSecret:  "secret",
			},
			setupMock: func(mc *MockClientRepository, mt *MockTokenRepository) {
				mc.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
				mt.On("RevokeRefreshToken", mock.Anything, "refresh-1", (*string)(nil)).Return(nil)
				mt.On("RevokeAccessToken", mock.Anything, "refresh-1").Return(domain.ErrTokenNotFound)
			},
			wantErr: nil,
		},
		{
			name: "wrong client secret fails",
			req: RevokeRequest{
				Token:        "token-1",
				ClientID:     "minu-find-local",
				ClientSecret: "wrong",
			},
			setupMock: func(mc *MockClientRepository, mt *MockTokenRepository) {
				mc.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: domain.ErrInvalidClientSecret,
		},
		{
			name: "unknown client fails",
			req: RevokeRequest{
				Token:        "token-1",
				ClientID:     "ghost",
				ClientSecret: "secret",
			},
			setupMock: func(mc *MockClientRepository, mt *MockTokenRepository) {
				mc.On("FindClientByClientID", mock.Anything, "ghost").Return(nil, domain.ErrClientNotFound)
			},
			wantErr: domain.ErrClientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClients := new(MockClientRepository)
			mockTokens := new(MockTokenRepository)
			tt.setupMock(mockClients, mockTokens)

			service := NewRevokeService(mockClients, mockTokens, zap.NewNop())
			err := service.Revoke(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			mockClients.AssertExpectations(t)
			mockTokens.AssertExpectations(t)
		})
	}
}
