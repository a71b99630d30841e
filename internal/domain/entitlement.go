package domain

// DenialReason explains why access to a service was denied. Reasons are
// authoritative business decisions, distinct from transport errors.
type DenialReason string

const (
	// DenialServiceUnavailable means the service record itself is missing.
	DenialServiceUnavailable DenialReason = "service_unavailable"

	// DenialSubscriptionRequired means the user has no subscription at all.
	DenialSubscriptionRequired DenialReason = "subscription_required"

	// DenialSubscriptionExpired means the subscription lapsed or its period ended.
	DenialSubscriptionExpired DenialReason = "subscription_expired"

	// DenialInsufficientPlan means the subscription is live but the granted
	// permission level is below what was requested.
	DenialInsufficientPlan DenialReason = "insufficient_plan"
)

// AccessDecision is the result of evaluating a user's entitlement to a
// service, optionally at a specific permission level.
type AccessDecision struct {
	HasAccess     bool          `json:"has_access"`
	HasPermission bool          `json:"has_permission"`
	Reason        DenialReason  `json:"reason,omitempty"`
	Subscription  *Subscription `json:"subscription,omitempty"`
	RequiredPlan  string        `json:"required_plan,omitempty"`
}

// Denied reports whether the decision denies access or the requested permission.
func (d *AccessDecision) Denied() bool {
	return !d.HasAccess || !d.HasPermission
}
