package application

import (
	"context"
	"time"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// AuthorizeRequest carries the query parameters of GET /oauth/authorize.
type AuthorizeRequest struct {
	ClientID            string
	RedirectURI         string
	ResponseType        string
	Scope               []string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizeService validates authorization requests and issues authorization codes.
type AuthorizeService struct {
	clientRepo domain.ClientRepository
	codeRepo   domain.AuthorizationCodeRepository
	logger     *zap.Logger
}

func NewAuthorizeService(clientRepo domain.ClientRepository, codeRepo domain.AuthorizationCodeRepository, logger *zap.Logger) *AuthorizeService {
	return &AuthorizeService{
		clientRepo: clientRepo,
		codeRepo:   codeRepo,
		logger:     logger,
	}
}

// ValidateRequest checks an authorization request in the order mandated by
// RFC 6749: client first, then redirect_uri. The redirect_uri check happens
// before anything else that could trigger a redirect, so an unregistered URI
// is never redirected to.
func (s *AuthorizeService) ValidateRequest(ctx context.Context, req AuthorizeRequest) (*domain.OAuthClient, error) {
	s.logger.Debug("Validating authorization request",
		zap.String("client_id", req.ClientID),
		zap.String("redirect_uri", req.RedirectURI))

	client, err := s.clientRepo.FindClientByClientID(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("Failed to find client",
			zap.String("client_id", req.ClientID),
			zap.Error(err))
		return nil, domain.ErrClientNotFound
	}
	if !client.IsActive {
		s.logger.Warn("Client is disabled", zap.String("client_id", req.ClientID))
		return nil, domain.ErrClientInactive
	}

	if !client.HasRedirectURI(req.RedirectURI) {
		s.logger.Error("Redirect URI not registered",
			zap.String("client_id", req.ClientID),
			zap.String("redirect_uri", req.RedirectURI))
		return nil, domain.ErrInvalidRedirectURI
	}

	if req.ResponseType != "code" {
		s.logger.Error("Unsupported response type",
			zap.String("response_type", req.ResponseType))
		return nil, domain.NewOAuthError(domain.OAuthErrUnsupportedResponseType, "only response_type=code is supported")
	}

	for _, scope := range req.Scope {
		if !client.HasScope(scope) {
			s.logger.Error("Scope not registered for client",
				zap.String("client_id", req.ClientID),
				zap.String("scope", scope))
			return nil, domain.ErrInvalidScope
		}
	}

	if req.CodeChallenge == "" {
		s.logger.Error("Missing code challenge", zap.String("client_id", req.ClientID))
		return nil, domain.NewOAuthError(domain.OAuthErrInvalidRequest, "code_challenge is required")
	}
	if req.CodeChallengeMethod != domain.CodeChallengeMethodS256 {
		s.logger.Error("Unsupported code challenge method",
			zap.String("method", req.CodeChallengeMethod))
		return nil, domain.ErrInvalidCodeChallengeMethod
	}

	return client, nil
}

// GenerateAuthorizationCode mints a single-use code bound to the client, user,
// PKCE challenge and the redirect URI used at authorize time.
func (s *AuthorizeService) GenerateAuthorizationCode(ctx context.Context, req AuthorizeRequest, userID string) (string, error) {
	s.logger.Debug("Generating authorization code",
		zap.String("client_id", req.ClientID),
		zap.String("user_id", userID),
		zap.Strings("scopes", req.Scope))

	code := ulid.Make().String()
	now := time.Now()

	authCode := &domain.AuthorizationCode{
		ID:                  ulid.Make().String(),
		Code:                code,
		ClientID:            req.ClientID,
		UserID:              userID,
		Scopes:              req.Scope,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
		RedirectURI:         req.RedirectURI,
		CreatedAt:           now,
		ExpiresAt:           now.Add(domain.AuthorizationCodeTTL),
	}

	if err := s.codeRepo.CreateAuthorizationCode(ctx, authCode); err != nil {
		s.logger.Error("Failed to store authorization code", zap.Error(err))
		return "", domain.ErrInternal
	}

	return code, nil
}
