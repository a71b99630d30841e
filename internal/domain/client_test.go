package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuthClient_HasRedirectURI(t *testing.T) {
	client := &OAuthClient{
		RedirectURIs: []string{"http://localhost:3001/auth/callback"},
	}

	assert.True(t, client.HasRedirectURI("http://localhost:3001/auth/callback"))

	// Exact match only: no prefix, trailing slash or case leniency.
	assert.False(t, client.HasRedirectURI("http://localhost:3001/auth/callback/"))
	assert.False(t, client.HasRedirectURI("http://localhost:3001/auth"))
	assert.False(t, client.HasRedirectURI("http://localhost:3001/auth/callback?x=1"))
	assert.False(t, client.HasRedirectURI("HTTP://LOCALHOST:3001/auth/callback"))
}

func TestOAuthClient_SecretNeverSerialized(t *testing.T) {
	client := &OAuthClient{
		ClientID:     "minu-find-local",
		ClientSecret: "secret",
	}

	raw, err := json.Marshal(client)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}
