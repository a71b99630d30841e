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

// PostgresClientRepository implements ClientRepository using PostgreSQL
type PostgresClientRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewClientRepository creates a new PostgresClientRepository
func NewClientRepository(db *database.Postgres, logger *zap.Logger) domain.ClientRepository {
	return &PostgresClientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresClientRepository) CreateClient(ctx context.Context, client *domain.OAuthClient) error {
	redirectURIs, err := json.Marshal(client.RedirectURIs)
	if err != nil {
		return err
	}

	scopes, err := json.Marshal(client.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		INSERT INTO oauth_clients (id, client_id, client_secret, name, redirect_uris, scopes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, client.ID, client.ClientID, client.ClientSecret, client.Name, redirectURIs, scopes, client.IsActive, client.CreatedAt, client.UpdatedAt)
}

func (r *PostgresClientRepository) FindClientByClientID(ctx context.Context, clientID string) (*domain.OAuthClient, error) {
	client := &domain.OAuthClient{}
	var redirectURIs, scopes []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, client_id, client_secret, name, redirect_uris, scopes, is_active, created_at, updated_at
		FROM oauth_clients WHERE client_id = $1
	`, clientID).Scan(&client.ID, &client.ClientID, &client.ClientSecret, &client.Name, &redirectURIs, &scopes, &client.IsActive, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(redirectURIs, &client.RedirectURIs); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(scopes, &client.Scopes); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *PostgresClientRepository) UpdateClient(ctx context.Context, client *domain.OAuthClient) error {
	redirectURIs, err := json.Marshal(client.RedirectURIs)
	if err != nil {
		return err
	}

	scopes, err := json.Marshal(client.Scopes)
	if err != nil {
		return err
	}

	return r.db.Exec(ctx, `
		UPDATE oauth_clients
		SET client_secret = $1, name = $2, redirect_uris = $3, scopes = $4, is_active = $5, updated_at = $6
		WHERE client_id = $7
	`, client.ClientSecret, client.Name, redirectURIs, scopes, client.IsActive, client.UpdatedAt, client.ClientID)
}

func (r *PostgresClientRepository) DeactivateClient(ctx context.Context, clientID string) error {
	return r.db.Exec(ctx, `
		UPDATE oauth_clients SET is_active = false, updated_at = now() WHERE client_id = $1
	`, clientID)
}

func (r *PostgresClientRepository) ListClients(ctx context.Context) ([]*domain.OAuthClient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, client_id, client_secret, name, redirect_uris, scopes, is_active, created_at, updated_at
		FROM oauth_clients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.OAuthClient
	for rows.Next() {
		client := &domain.OAuthClient{}
		var redirectURIs, scopes []byte

		err := rows.Scan(&client.ID, &client.ClientID, &client.ClientSecret, &client.Name, &redirectURIs, &scopes, &client.IsActive, &client.CreatedAt, &client.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(redirectURIs, &client.RedirectURIs); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(scopes, &client.Scopes); err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}
	return clients, rows.Err()
}
