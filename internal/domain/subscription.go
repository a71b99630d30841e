package domain

import (
	"context"
	"time"
)

// Subscription statuses as stored in the read model.
const (
	SubscriptionStatusActive  = "active"
	SubscriptionStatusTrial   = "trial"
	SubscriptionStatusExpired = "expired"
	SubscriptionStatusPastDue = "past_due"
	SubscriptionStatusCancel  = "canceled"
)

// PermissionRead is the baseline permission granted by any live subscription.
const PermissionRead = "read"

// Subscription is the entitlement read model for one (user, service) pair.
type Subscription struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ServiceID        string    `json:"service_id"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	Permissions      []string  `json:"permissions"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Live reports whether the subscription grants baseline access at the given
// instant: status active or trial, and the period has not ended.
func (s *Subscription) Live(now time.Time) bool {
	if s.Status != SubscriptionStatusActive && s.Status != SubscriptionStatusTrial {
		return false
	}
	return !s.CurrentPeriodEnd.Before(now)
}

// HasPermission reports whether the permission was explicitly granted.
// Baseline read is implied by a live subscription; elevated permissions are
// never inferred from the plan name.
func (s *Subscription) HasPermission(permission string) bool {
	if permission == PermissionRead {
		return true
	}
	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// Service is a product surface users subscribe to.
type Service struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RequiredPlan string    `json:"required_plan"`
	CreatedAt    time.Time `json:"created_at"`
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	// FindService looks up a service by ID
	FindService(ctx context.Context, serviceID string) (*Service, error)

	// FindSubscription looks up the subscription for a (user, service) pair
	FindSubscription(ctx context.Context, userID, serviceID string) (*Subscription, error)
}
