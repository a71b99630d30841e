package application

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"
	"time"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// ExchangeCodeRequest carries the authorization_code grant parameters.
type ExchangeCodeRequest struct {
	Code         string
	ClientID     string
	ClientSecret string
	RedirectURI  string
	CodeVerifier string
}

// RefreshRequest carries the refresh_token grant parameters.
type RefreshRequest struct {
	RefreshToken string
	ClientID     string
	ClientSecret string
}

// TokenService exchanges authorization codes and refresh tokens for
// access/refresh token pairs.
type TokenService struct {
	clientRepo domain.ClientRepository
	codeRepo   domain.AuthorizationCodeRepository
	tokenRepo  domain.TokenRepository
	signer     domain.AccessTokenSigner
	logger     *zap.Logger
}

func NewTokenService(
	clientRepo domain.ClientRepository,
	codeRepo domain.AuthorizationCodeRepository,
	tokenRepo domain.TokenRepository,
	signer domain.AccessTokenSigner,
	logger *zap.Logger,
) *TokenService {
	return &TokenService{
		clientRepo: clientRepo,
		codeRepo:   codeRepo,
		tokenRepo:  tokenRepo,
		signer:     signer,
		logger:     logger,
	}
}

// ExchangeAuthorizationCode redeems a code for a token pair. The code is
// marked used via a conditional update before any token is issued; losing
// that race fails the grant, so one code can never mint two pairs.
func (s *TokenService) ExchangeAuthorizationCode(ctx context.Context, req ExchangeCodeRequest) (*domain.TokenResponse, error) {
	s.logger.Debug("Exchanging authorization code",
		zap.String("client_id", req.ClientID))

	client, err := s.validateClientCredentials(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return nil, err
	}

	authCode, err := s.codeRepo.GetAuthorizationCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to find authorization code", zap.Error(err))
		return nil, domain.ErrInvalidAuthorizationCode
	}
	if authCode.ClientID != client.ClientID {
		s.logger.Error("Authorization code issued to another client",
			zap.String("client_id", req.ClientID))
		return nil, domain.ErrInvalidAuthorizationCode
	}
	if authCode.Expired(time.Now()) {
		s.logger.Error("Authorization code expired",
			zap.Time("expires_at", authCode.ExpiresAt))
		return nil, domain.ErrAuthorizationCodeExpired
	}
	if authCode.RedirectURI != req.RedirectURI {
		s.logger.Error("Redirect URI does not match authorize request",
			zap.String("redirect_uri", req.RedirectURI))
		return nil, domain.ErrInvalidAuthorizationCode
	}

	if err := verifyPKCE(req.CodeVerifier, authCode.CodeChallenge, authCode.CodeChallengeMethod); err != nil {
		s.logger.Error("PKCE verification failed",
			zap.String("client_id", req.ClientID),
			zap.Error(err))
		return nil, err
	}

	used, err := s.codeRepo.UseAuthorizationCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("Failed to mark authorization code used", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if !used {
		s.logger.Warn("Authorization code replay detected",
			zap.String("client_id", req.ClientID))
		return nil, domain.ErrInvalidAuthorizationCode
	}

	resp, _, err := s.issueTokenPair(ctx, client.ClientID, authCode.UserID, authCode.Scopes)
	return resp, err
}

// RefreshAccessToken exchanges a refresh token for a new pair. The presented
// token is rotated: revoked with replaced_by pointing at its successor.
func (s *TokenService) RefreshAccessToken(ctx context.Context, req RefreshRequest) (*domain.TokenResponse, error) {
	s.logger.Debug("Refreshing access token",
		zap.String("client_id", req.ClientID))

	client, err := s.validateClientCredentials(ctx, req.ClientID, req.ClientSecret)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokenRepo.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		s.logger.Error("Failed to find refresh token", zap.Error(err))
		return nil, domain.ErrInvalidRefreshToken
	}
	if refresh.ClientID != client.ClientID {
		s.logger.Error("Refresh token issued to another client",
			zap.String("client_id", req.ClientID))
		return nil, domain.ErrInvalidRefreshToken
	}
	if refresh.Revoked {
		s.logger.Warn("Revoked refresh token presented",
			zap.String("client_id", req.ClientID))
		return nil, domain.ErrInvalidRefreshToken
	}
	if refresh.Expired(time.Now()) {
		s.logger.Warn("Expired refresh token presented",
			zap.Time("expires_at", refresh.ExpiresAt))
		return nil, domain.ErrInvalidRefreshToken
	}

	if err := s.tokenRepo.TouchRefreshToken(ctx, req.RefreshToken); err != nil {
		s.logger.Error("Failed to update refresh token last_used_at", zap.Error(err))
		// Bookkeeping only; the grant proceeds.
	}

	resp, successor, err := s.issueTokenPair(ctx, client.ClientID, refresh.UserID, refresh.Scopes)
	if err != nil {
		return nil, err
	}

	// The tombstone records the successor's row ID, never the raw token.
	if err := s.tokenRepo.RevokeRefreshToken(ctx, req.RefreshToken, &successor.ID); err != nil {
		s.logger.Error("Failed to rotate refresh token", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return resp, nil
}

func (s *TokenService) validateClientCredentials(ctx context.Context, clientID, clientSecret string) (*domain.OAuthClient, error) {
	client, err := s.clientRepo.FindClientByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("Failed to find client",
			zap.String("client_id", clientID),
			zap.Error(err))
		return nil, domain.ErrClientNotFound
	}
	if !client.IsActive {
		return nil, domain.ErrClientInactive
	}
	if subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) != 1 {
		s.logger.Warn("Client secret mismatch", zap.String("client_id", clientID))
		return nil, domain.ErrInvalidClientSecret
	}
	return client, nil
}

func (s *TokenService) issueTokenPair(ctx context.Context, clientID, userID string, scopes []string) (*domain.TokenResponse, *domain.RefreshToken, error) {
	now := time.Now()

	accessID := ulid.Make().String()
	accessExpiry := now.Add(domain.AccessTokenTTL)
	raw, err := s.signer.SignAccessToken(accessID, userID, clientID, scopes, accessExpiry)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err))
		return nil, nil, domain.ErrInternal
	}

	access := &domain.AccessToken{
		ID:          accessID,
		ClientID:    clientID,
		UserID:      userID,
		AccessToken: raw,
		TokenType:   domain.TokenTypeBearer,
		Scopes:      scopes,
		ExpiresAt:   accessExpiry,
		CreatedAt:   now,
	}
	if err := s.tokenRepo.CreateAccessToken(ctx, access); err != nil {
		s.logger.Error("Failed to store access token", zap.Error(err))
		return nil, nil, domain.ErrInternal
	}

	refresh := &domain.RefreshToken{
		ID:           ulid.Make().String(),
		ClientID:     clientID,
		UserID:       userID,
		RefreshToken: ulid.Make().String() + ulid.Make().String(),
		Scopes:       scopes,
		ExpiresAt:    now.Add(domain.RefreshTokenTTL),
		CreatedAt:    now,
	}
	if err := s.tokenRepo.CreateRefreshToken(ctx, refresh); err != nil {
		s.logger.Error("Failed to store refresh token", zap.Error(err))
		return nil, nil, domain.ErrInternal
	}

	return &domain.TokenResponse{
		AccessToken:  raw,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    int(domain.AccessTokenTTL.Seconds()),
		RefreshToken: refresh.RefreshToken,
		Scope:        strings.Join(scopes, " "),
	}, refresh, nil
}

// verifyPKCE recomputes the S256 challenge from the verifier and compares it
// constant-time against the stored challenge. Plain PKCE is never accepted.
func verifyPKCE(codeVerifier, codeChallenge, codeChallengeMethod string) error {
	if codeChallengeMethod != domain.CodeChallengeMethodS256 {
		return domain.ErrInvalidCodeChallengeMethod
	}
	if codeVerifier == "" {
		return domain.ErrInvalidCodeVerifier
	}
	hash := sha256.Sum256([]byte(codeVerifier))
	expected := base64.RawURLEncoding.EncodeToString(hash[:])
	if subtle.ConstantTimeCompare([]byte(expected), []byte(codeChallenge)) != 1 {
		return domain.ErrInvalidCodeVerifier
	}
	return nil
}
