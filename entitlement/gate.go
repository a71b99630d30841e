package entitlement

import (
	"context"
)

// Remediation is the primary action a denied user should be offered.
type Remediation string

const (
	RemediationContactSupport Remediation = "contact_support"
	RemediationSubscribe      Remediation = "subscribe"
	RemediationRenew          Remediation = "renew"
	RemediationUpgrade        Remediation = "upgrade"
)

// RemediationFor maps a denial reason to the action that resolves it.
func RemediationFor(reason DenialReason) Remediation {
	switch reason {
	case DenialSubscriptionRequired:
		return RemediationSubscribe
	case DenialSubscriptionExpired:
		return RemediationRenew
	case DenialInsufficientPlan:
		return RemediationUpgrade
	default:
		return RemediationContactSupport
	}
}

// Callbacks receives exactly one terminal call per Resolve, plus OnLoading
// first whenever the decision was not already cached. Transport errors go to
// OnError, never OnDenied: the two must stay distinguishable.
type Callbacks struct {
	OnLoading func()
	OnGranted func(decision *AccessDecision)
	OnDenied  func(reason DenialReason, remediation Remediation, decision *AccessDecision)
	OnError   func(err error)
}

// Gate wraps a protected unit of UI: it queries the decision cache and
// dispatches to the matching callback. Explicit composition, no wrapper
// metaprogramming.
type Gate struct {
	cache      *Cache
	serviceID  string
	permission string
}

// NewGate constructs a gate for one (serviceID, permission). The cache is a
// required capability: wiring a gate without one is a programming error, so
// construction panics rather than failing lazily at render time.
func NewGate(cache *Cache, serviceID, permission string) *Gate {
	if cache == nil {
		panic("entitlement: NewGate requires a decision cache")
	}
	if serviceID == "" {
		panic("entitlement: NewGate requires a service id")
	}
	return &Gate{
		cache:      cache,
		serviceID:  serviceID,
		permission: permission,
	}
}

// Resolve evaluates the gate and fires the callbacks. Cancellation of ctx
// (caller went away before the fetch finished) suppresses every terminal
// callback so no state lands on a departed caller.
func (g *Gate) Resolve(ctx context.Context, cb Callbacks) {
	if !g.cache.Has(g.serviceID, g.permission) && cb.OnLoading != nil {
		cb.OnLoading()
	}

	decision, err := g.cache.Decision(ctx, g.serviceID, g.permission)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		return
	}

	if decision.Denied() {
		if cb.OnDenied != nil {
			cb.OnDenied(decision.Reason, RemediationFor(decision.Reason), decision)
		}
		return
	}

	if cb.OnGranted != nil {
		cb.OnGranted(decision)
	}
}

// Invalidate drops this gate's cached decision so the next Resolve refetches.
func (g *Gate) Invalidate() {
	g.cache.InvalidateService(g.serviceID)
}
