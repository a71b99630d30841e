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

// PostgresCodeRepository implements AuthorizationCodeRepository using PostgreSQL
type PostgresCodeRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewCodeRepository creates a new PostgresCodeRepository
func NewCodeRepository(db *database.Postgres, logger *zap.Logger) domain.AuthorizationCodeRepository {
	return &PostgresCodeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresCodeRepository) CreateAuthorizationCode(ctx context.Context, code *domain.AuthorizationCode) error {
	scopes, err := json.Marshal(code.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO authorization_codes (id, code, client_id, user_id, scopes, code_challenge, code_challenge_method, redirect_uri, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, code.ID, code.Code, code.ClientID, code.UserID, scopes, code.CodeChallenge, code.CodeChallengeMethod, code.RedirectURI, code.ExpiresAt, code.CreatedAt)
}

func (r *PostgresCodeRepository) GetAuthorizationCode(ctx context.Context, code string) (*domain.AuthorizationCode, error) {
	authCode := &domain.AuthorizationCode{}
	var scopes []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, code, client_id, user_id, scopes, code_challenge, code_challenge_method, redirect_uri, expires_at, used_at, created_at
		FROM authorization_codes WHERE code = $1
	`, code).Scan(&authCode.ID, &authCode.Code, &authCode.ClientID, &authCode.UserID, &scopes, &authCode.CodeChallenge, &authCode.CodeChallengeMethod, &authCode.RedirectURI, &authCode.ExpiresAt, &authCode.UsedAt, &authCode.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidAuthorizationCode
		}
		return nil, err
	}

	if err := json.Unmarshal(scopes, &authCode.Scopes); err != nil {
		return nil, err
	}

	return authCode, nil
}

// UseAuthorizationCode marks the code used with a conditional update. The
// affected-row count decides the winner when the same code is redeemed twice
// concurrently; exactly one caller sees true.
func (r *PostgresCodeRepository) UseAuthorizationCode(ctx context.Context, code string) (bool, error) {
	tag, err := r.db.ExecTag(ctx, `
		UPDATE authorization_codes SET used_at = now()
		WHERE code = $1 AND used_at IS NULL
	`, code)
	if err != nil {
		r.logger.Error("Failed to mark authorization code used", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
