package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"github.com/ideaonaction/minu-sso/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresTokenRepository implements TokenRepository using PostgreSQL
type PostgresTokenRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewTokenRepository creates a new PostgresTokenRepository
func NewTokenRepository(db *database.Postgres, logger *zap.Logger) domain.TokenRepository {
	return &PostgresTokenRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresTokenRepository) CreateAccessToken(ctx context.Context, token *domain.AccessToken) error {
	scopes, err := json.Marshal(token.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO service_tokens (id, client_id, user_id, access_token, token_type, scopes, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, token.ID, token.ClientID, token.UserID, token.AccessToken, token.TokenType, scopes, token.ExpiresAt, token.CreatedAt)
}

func (r *PostgresTokenRepository) GetAccessToken(ctx context.Context, raw string) (*domain.AccessToken, error) {
	token := &domain.AccessToken{}
	var scopes []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, client_id, user_id, access_token, token_type, scopes, expires_at, revoked_at, created_at
		FROM service_tokens WHERE access_token = $1
	`, raw).Scan(&token.ID, &token.ClientID, &token.UserID, &token.AccessToken, &token.TokenType, &scopes, &token.ExpiresAt, &token.RevokedAt, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(scopes, &token.Scopes); err != nil {
		return nil, err
	}

	return token, nil
}

func (r *PostgresTokenRepository) RevokeAccessToken(ctx context.Context, raw string) error {
	return r.db.Exec(ctx, `
		UPDATE service_tokens SET revoked_at = now()
		WHERE access_token = $1 AND revoked_at IS NULL
	`, raw)
}

func (r *PostgresTokenRepository) CreateRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	scopes, err := json.Marshal(token.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, client_id, user_id, refresh_token, scopes, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7)
	`, token.ID, token.ClientID, token.UserID, token.RefreshToken, scopes, token.ExpiresAt, token.CreatedAt)
}

func (r *PostgresTokenRepository) GetRefreshToken(ctx context.Context, raw string) (*domain.RefreshToken, error) {
	token := &domain.RefreshToken{}
	var scopes []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, client_id, user_id, refresh_token, scopes, expires_at, revoked, replaced_by, created_at, last_used_at
		FROM refresh_tokens WHERE refresh_token = $1
	`, raw).Scan(&token.ID, &token.ClientID, &token.UserID, &token.RefreshToken, &scopes, &token.ExpiresAt, &token.Revoked, &token.ReplacedBy, &token.CreatedAt, &token.LastUsedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(scopes, &token.Scopes); err != nil {
		return nil, err
	}

	return token, nil
}

// RevokeRefreshToken tombstones the row; rows are never deleted so rotation
// chains and revocations stay auditable.
func (r *PostgresTokenRepository) RevokeRefreshToken(ctx context.Context, raw string, replacedBy *string) error {
	return r.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true, replaced_by = $2
		WHERE refresh_token = $1 AND revoked = false
	`, raw, replacedBy)
}

func (r *PostgresTokenRepository) TouchRefreshToken(ctx context.Context, raw string) error {
	return r.db.Exec(ctx, `
		UPDATE refresh_tokens SET last_used_at = now() WHERE refresh_token = $1
	`, raw)
}
