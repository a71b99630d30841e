package application

import (
	"context"
	"testing"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

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

func TestLoginService_Login(t *testing.T) {
	hash, err := password.HashPassword("correct horse")
	assert.NoError(t, err)

	user := &domain.User{
		ID:       "user-1",
		Email:    "ana@example.com",
		Password: hash,
		Name:     "Ana",
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:     "success",
			email:    "ana@example.com",
			password: "correct horse",
			setupMock: func(m *MockUserRepository) {
				m.On("FindUserByEmail", mock.Anything, "ana@example.com").Return(user, nil)
			},
			wantErr: nil,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "correct horse",
			setupMock: func(m *MockUserRepository) {
				m.On("FindUserByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "ana@example.com",
			password: "wrong horse",
			setupMock: func(m *MockUserRepository) {
				m.On("FindUserByEmail", mock.Anything, "ana@example.com").Return(user, nil)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(mockUsers)

			service := NewLoginService(mockUsers, zap.NewNop())
			got, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
			}

			mockUsers.AssertExpectations(t)
		})
	}
}
