package application

import (
	"context"
	"testing"
	"time"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockClientRepository is a mock implementation of domain.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) CreateClient(ctx context.Context, client *domain.OAuthClient) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByClientID(ctx context.Context, clientID string) (*domain.OAuthClient, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OAuthClient), args.Error(1)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client *domain.OAuthClient) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeactivateClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]*domain.OAuthClient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.OAuthClient), args.Error(1)
}

// MockCodeRepository is a mock implementation of domain.AuthorizationCodeRepository
type MockCodeRepository struct {
	mock.Mock
}

func (m *MockCodeRepository) CreateAuthorizationCode(ctx context.Context, code *domain.AuthorizationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockCodeRepository) GetAuthorizationCode(ctx context.Context, code string) (*domain.AuthorizationCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthorizationCode), args.Error(1)
}

func (m *MockCodeRepository) UseAuthorizationCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func activeClient() *domain.OAuthClient {
	return &domain.OAuthClient{
		ID:           "01J0000000000000000000CLNT",
		ClientID:     "minu-find-local",
		ClientSecret: "secret",
		Name:         "Minu Find (local)",
		RedirectURIs: []string{"http://localhost:3001/auth/callback"},
		Scopes:       []string{"profile", "find:market:read"},
		IsActive:     true,
	}
}

func validAuthorizeRequest() AuthorizeRequest {
	return AuthorizeRequest{
		ClientID:            "minu-find-local",
		RedirectURI:         "http://localhost:3001/auth/callback",
		ResponseType:        "code",
		Scope:               []string{"profile"},
		State:               "abc123",
		CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		CodeChallengeMethod: "S256",
	}
}

func TestAuthorizeService_ValidateRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AuthorizeRequest)
		setupMock func(*MockClientRepository)
		wantErr   error
	}{
		{
			name:   "success",
			mutate: func(r *AuthorizeRequest) {},
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: nil,
		},
		{
			name:   "client not found",
			mutate: func(r *AuthorizeRequest) { r.ClientID = "ghost" },
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "ghost").Return(nil, domain.ErrClientNotFound)
			},
			wantErr: domain.ErrClientNotFound,
		},
		{
			name:   "client disabled",
			mutate: func(r *AuthorizeRequest) {},
			setupMock: func(m *MockClientRepository) {
				client := activeClient()
				client.IsActive = false
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(client, nil)
			},
			wantErr: domain.ErrClientInactive,
		},
		{
			name:   "unregistered redirect uri",
			mutate: func(r *AuthorizeRequest) { r.RedirectURI = "http://evil.example/callback" },
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: domain.ErrInvalidRedirectURI,
		},
		{
			name:   "unknown scope",
			mutate: func(r *AuthorizeRequest) { r.Scope = []string{"admin:write"} },
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: domain.ErrInvalidScope,
		},
		{
			name:   "missing code challenge",
			mutate: func(r *AuthorizeRequest) { r.CodeChallenge = "" },
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: domain.NewOAuthError(domain.OAuthErrInvalidRequest, "code_challenge is required"),
		},
		{
			name:   "plain pkce rejected",
			mutate: func(r *AuthorizeRequest) { r.CodeChallengeMethod = "plain" },
			setupMock: func(m *MockClientRepository) {
				m.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)
			},
			wantErr: domain.ErrInvalidCodeChallengeMethod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClients := new(MockClientRepository)
			tt.setupMock(mockClients)

			req := validAuthorizeRequest()
			tt.mutate(&req)

			service := NewAuthorizeService(mockClients, nil, zap.NewNop())
			client, err := service.ValidateRequest(context.Background(), req)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
				assert.Equal(t, req.ClientID, client.ClientID)
			}

			mockClients.AssertExpectations(t)
		})
	}
}

func TestAuthorizeService_ValidateRequest_UnsupportedResponseType(t *testing.T) {
	mockClients := new(MockClientRepository)
	mockClients.On("FindClientByClientID", mock.Anything, "minu-find-local").Return(activeClient(), nil)

	req := validAuthorizeRequest()
	req.ResponseType = "token"

	service := NewAuthorizeService(mockClients, nil, zap.NewNop())
	_, err := service.ValidateRequest(context.Background(), req)

	assert.Error(t, err)
	oauthErr := domain.AsOAuthError(err)
	assert.Equal(t, domain.OAuthErrUnsupportedResponseType, oauthErr.Code)
}

func TestAuthorizeService_GenerateAuthorizationCode(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockCodeRepository)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(m *MockCodeRepository) {
				m.On("CreateAuthorizationCode", mock.Anything, mock.MatchedBy(func(code *domain.AuthorizationCode) bool {
					return code.ClientID == "minu-find-local" &&
						code.UserID == "user-1" &&
						code.CodeChallengeMethod == "S256" &&
						code.RedirectURI == "http://localhost:3001/auth/callback" &&
						code.UsedAt == nil &&
						code.ExpiresAt.Sub(code.CreatedAt) == 10*time.Minute
				})).Return(nil)
			},
			wantErr: nil,
		},
		{
			name: "repository error",
			setupMock: func(m *MockCodeRepository) {
				m.On("CreateAuthorizationCode", mock.Anything, mock.Anything).Return(domain.ErrInternal)
			},
			wantErr: domain.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCodes := new(MockCodeRepository)
			tt.setupMock(mockCodes)

			service := NewAuthorizeService(nil, mockCodes, zap.NewNop())
			code, err := service.GenerateAuthorizationCode(context.Background(), validAuthorizeRequest(), "user-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, code)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, code)
			}

			mockCodes.AssertExpectations(t)
		})
	}
}
