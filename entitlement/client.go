package entitlement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// APIClient fetches access decisions from the SSO service's entitlement
// endpoint. Requests carry the user's bearer token and are canceled with the
// caller's context.
type APIClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewAPIClient creates a client for GET {baseURL}/api/services/{id}/access.
func NewAPIClient(baseURL, accessToken string, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// FetchDecision retrieves a fresh decision. A non-2xx status is a transport
// error, never a denial: denials arrive as 200 bodies with has_access=false,
// so the caller can tell "can't tell" from "no".
func (c *APIClient) FetchDecision(ctx context.Context, serviceID, permission string) (*AccessDecision, error) {
	endpoint := fmt.Sprintf("%s/api/services/%s/access", c.baseURL, url.PathEscape(serviceID))
	if permission != "" {
		endpoint += "?permission=" + url.QueryEscape(permission)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Entitlement fetch failed",
			zap.String("service_id", serviceID),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entitlement api returned status %d", resp.StatusCode)
	}

	decision := &AccessDecision{}
	if err := json.NewDecoder(resp.Body).Decode(decision); err != nil {
		return nil, fmt.Errorf("decoding entitlement response: %w", err)
	}
	return decision, nil
}
