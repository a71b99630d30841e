package handlers

import (
	"context"
	"time"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/stretchr/testify/mock"
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

// MockTokenRepository is a mock implementation of domain.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) CreateAccessToken(ctx context.Context, token *domain.AccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetAccessToken(ctx context.Context, raw string) (*domain.AccessToken, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessToken), args.Error(1)
}

func (m *MockTokenRepository) RevokeAccessToken(ctx context.Context, raw string) error {
	args := m.Called(ctx, raw)
	return args.Error(0)
}

func (m *MockTokenRepository) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, raw string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) RevokeRefreshToken(ctx context.Context, raw string, replacedBy *string) error {
	args := m.Called(ctx, raw, replacedBy)
	return args.Error(0)
}

func (m *MockTokenRepository) TouchRefreshToken(ctx context.Context, raw string) error {
	args := m.Called(ctx, raw)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of domain.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindService(ctx context.Context, serviceID string) (*domain.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockSubscriptionRepository) FindSubscription(ctx context.Context, userID, serviceID string) (*domain.Subscription, error) {
	args := m.Called(ctx, userID, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testClient() *domain.OAuthClient {
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

func testAuthCode(now time.Time) *domain.AuthorizationCode {
	return &domain.AuthorizationCode{
		ID:                  "01J0000000000000000000CODE",
		Code:                "code-1",
		ClientID:            "minu-find-local",
		UserID:              "user-1",
		Scopes:              []string{"profile"},
		CodeChallenge:       "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM",
		CodeChallengeMethod: "S256",
		RedirectURI:         "http://localhost:3001/auth/callback",
		CreatedAt:           now,
		ExpiresAt:           now.Add(domain.AuthorizationCodeTTL),
	}
}
