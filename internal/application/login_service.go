package application

import (
	"context"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/password"
	"go.uber.org/zap"
)

// LoginService authenticates users for the login surface that fronts
// /oauth/authorize.
type LoginService struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

func NewLoginService(userRepo domain.UserRepository, logger *zap.Logger) *LoginService {
	return &LoginService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login verifies the credentials and returns the user. Unknown email and bad
// password both map to ErrInvalidCredentials so the response does not reveal
// which part failed.
func (s *LoginService) Login(ctx context.Context, email, passwordStr string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("Login for unknown email", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	if err := password.CheckPassword(passwordStr, user.Password); err != nil {
		s.logger.Debug("Password mismatch", zap.String("email", email))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
