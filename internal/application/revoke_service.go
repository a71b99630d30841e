package application

import (
	"context"
	"crypto/subtle"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"go.uber.org/zap"
)

// RevokeRequest carries the RFC 7009 revocation parameters.
type RevokeRequest struct {
	Token         string
	TokenTypeHint string
	ClientID      string
	ClientSecret  string
}

// RevokeService invalidates access and refresh tokens. Revocation is
// idempotent: unknown or already-revoked tokens still succeed, so callers
// learn nothing about whether a token existed.
type RevokeService struct {
	clientRepo domain.ClientRepository
	tokenRepo  domain.TokenRepository
	logger     *zap.Logger
}

func NewRevokeService(clientRepo domain.ClientRepository, tokenRepo domain.TokenRepository, logger *zap.Logger) *RevokeService {
	return &RevokeService{
		clientRepo: clientRepo,
		tokenRepo:  tokenRepo,
		logger:     logger,
	}
}

// Revoke tombstones the token in whichever store holds it. The hint only
// orders the lookup; both stores are tried. Only bad client credentials fail.
func (s *RevokeService) Revoke(ctx context.Context, req RevokeRequest) error {
	client, err := s.clientRepo.FindClientByClientID(ctx, req.ClientID)
	if err != nil {
		s.logger.Error("Failed to find client for revocation",
			zap.String("client_id", req.ClientID),
			zap.Error(err))
		return domain.ErrClientNotFound
	}
	if subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(req.ClientSecret)) != 1 {
		s.logger.Warn("Client secret mismatch on revocation",
			zap.String("client_id", req.ClientID))
		return domain.ErrInvalidClientSecret
	}

	if req.TokenTypeHint == "refresh_token" {
		s.revokeRefresh(ctx, req.Token)
		s.revokeAccess(ctx, req.Token)
	} else {
		s.revokeAccess(ctx, req.Token)
		s.revokeRefresh(ctx, req.Token)
	}

	s.logger.Debug("Token revocation completed",
		zap.String("client_id", req.ClientID))
	return nil
}

func (s *RevokeService) revokeAccess(ctx context.Context, raw string) {
	if err := s.tokenRepo.RevokeAccessToken(ctx, raw); err != nil {
		// Suppressed per RFC 7009; revocation never reports token state.
		s.logger.Debug("Access token revocation suppressed error", zap.Error(err))
	}
}

func (s *RevokeService) revokeRefresh(ctx context.Context, raw string) {
	if err := s.tokenRepo.RevokeRefreshToken(ctx, raw, nil); err != nil {
		s.logger.Debug("Refresh token revocation suppressed error", zap.Error(err))
	}
}
