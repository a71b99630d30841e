// Package entitlement is the client-side half of the access control story:
// a time-boxed cache of access decisions with an explicit invalidation
// protocol, and a gate that folds a decision into render callbacks. It is
// the package the downstream Minu surfaces import against the SSO service.
//
// The cache is an injected object, never a package-level singleton, so
// invalidation stays testable.
package entitlement

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// DecisionTTL bounds how long a cached decision may be served. A downgrade
// is visible no later than this, even without an explicit invalidation.
const DecisionTTL = 5 * time.Minute

// Fetcher retrieves a fresh access decision from the entitlement API.
type Fetcher interface {
	FetchDecision(ctx context.Context, serviceID, permission string) (*AccessDecision, error)
}

// Cache caches access decisions keyed by (serviceID, permission).
type Cache struct {
	fetcher Fetcher
	store   *gocache.Cache
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewCache creates a decision cache over the given fetcher.
func NewCache(fetcher Fetcher, logger *zap.Logger) *Cache {
	return &Cache{
		fetcher: fetcher,
		store:   gocache.New(DecisionTTL, time.Minute),
		logger:  logger,
	}
}

func cacheKey(serviceID, permission string) string {
	return "svc:" + serviceID + "|perm:" + permission
}

// Has reports whether a live decision is cached for (serviceID, permission).
func (c *Cache) Has(serviceID, permission string) bool {
	_, ok := c.store.Get(cacheKey(serviceID, permission))
	return ok
}

// Decision returns the cached decision for (serviceID, permission), fetching
// on a miss. The ctx bounds the fetch; a canceled ctx returns ctx.Err() and
// caches nothing, so an unmounted caller never poisons the cache.
func (c *Cache) Decision(ctx context.Context, serviceID, permission string) (*AccessDecision, error) {
	key := cacheKey(serviceID, permission)
	if v, ok := c.store.Get(key); ok {
		return v.(*AccessDecision), nil
	}

	decision, err := c.fetcher.FetchDecision(ctx, serviceID, permission)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.store.Set(key, decision, DecisionTTL)
	c.logger.Debug("Cached access decision",
		zap.String("service_id", serviceID),
		zap.String("permission", permission),
		zap.Bool("has_access", decision.HasAccess))
	return decision, nil
}

// InvalidateAll wipes every cached decision. The next read always refetches.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Flush()
}

// InvalidateService drops every cached decision for one service.
func (c *Cache) InvalidateService(serviceID string) {
	c.deleteMatching(func(key string) bool {
		return strings.HasPrefix(key, "svc:"+serviceID+"|")
	})
}

// InvalidateSubscriptions drops every decision derived from subscription
// state. All decisions are, so this is a full wipe under a name callers use
// after plan changes, cancellations and payment failures.
func (c *Cache) InvalidateSubscriptions() {
	c.InvalidateAll()
}

// InvalidatePermission drops every cached decision for one permission across
// all services.
func (c *Cache) InvalidatePermission(permission string) {
	c.deleteMatching(func(key string) bool {
		return strings.HasSuffix(key, "|perm:"+permission)
	})
}

func (c *Cache) deleteMatching(match func(key string) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.store.Items() {
		if match(key) {
			c.store.Delete(key)
		}
	}
}
