package domain

import (
	"context"
	"time"
)

// OAuthClient represents a registered OAuth2 client, one per downstream
// Minu surface per environment.
type OAuthClient struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"-"`
	Name         string    `json:"name"`
	RedirectURIs []string  `json:"redirect_uris"`
	Scopes       []string  `json:"scopes"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRedirectURI reports whether uri exactly matches one of the client's
// registered redirect URIs. Exact string match only, no prefix logic.
func (c *OAuthClient) HasRedirectURI(uri string) bool {
	for _, registered := range c.RedirectURIs {
		if registered == uri {
			return true
		}
	}
	return false
}

// HasScope reports whether the scope is registered for the client.
func (c *OAuthClient) HasScope(scope string) bool {
	for _, registered := range c.Scopes {
		if registered == scope {
			return true
		}
	}
	return false
}

// ClientRepository defines the interface for OAuth client data access
type ClientRepository interface {
	// CreateClient creates a new OAuth client
	CreateClient(ctx context.Context, client *OAuthClient) error

	// FindClientByClientID finds an OAuth client by its public client_id
	FindClientByClientID(ctx context.Context, clientID string) (*OAuthClient, error)

	// UpdateClient updates an OAuth client
	UpdateClient(ctx context.Context, client *OAuthClient) error

	// DeactivateClient clears is_active for a client; rows are never deleted
	DeactivateClient(ctx context.Context, clientID string) error

	// ListClients lists all OAuth clients
	ListClients(ctx context.Context) ([]*OAuthClient, error)
}
