package application

import (
	"context"
	"time"

	"github.com/ideaonaction/minu-sso/internal/domain"
	"go.uber.org/zap"
)

// EntitlementService evaluates whether a user may access a service, and at
// which permission level. Denial reasons follow a fixed priority ladder so
// the UI can always offer the right remediation.
type EntitlementService struct {
	subscriptionRepo domain.SubscriptionRepository
	logger           *zap.Logger
}

func NewEntitlementService(subscriptionRepo domain.SubscriptionRepository, logger *zap.Logger) *EntitlementService {
	return &EntitlementService{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// EvaluateAccess computes the access decision for (userID, serviceID) at the
// requested permission level. An empty requiredPermission means baseline read.
// Only storage failures return an error; every business outcome is a decision.
func (s *EntitlementService) EvaluateAccess(ctx context.Context, userID, serviceID, requiredPermission string) (*domain.AccessDecision, error) {
	s.logger.Debug("Evaluating service access",
		zap.String("user_id", userID),
		zap.String("service_id", serviceID),
		zap.String("permission", requiredPermission))

	service, err := s.subscriptionRepo.FindService(ctx, serviceID)
	if err != nil {
		if err == domain.ErrServiceNotFound {
			return &domain.AccessDecision{
				Reason: domain.DenialServiceUnavailable,
			}, nil
		}
		s.logger.Error("Failed to load service", zap.Error(err))
		return nil, domain.ErrInternal
	}

	sub, err := s.subscriptionRepo.FindSubscription(ctx, userID, serviceID)
	if err != nil {
		if err == domain.ErrSubscriptionNotFound {
			return &domain.AccessDecision{
				Reason:       domain.DenialSubscriptionRequired,
				RequiredPlan: service.RequiredPlan,
			}, nil
		}
		s.logger.Error("Failed to load subscription", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if !sub.Live(time.Now()) {
		return &domain.AccessDecision{
			Reason:       domain.DenialSubscriptionExpired,
			Subscription: sub,
			RequiredPlan: service.RequiredPlan,
		}, nil
	}

	if requiredPermission == "" {
		requiredPermission = domain.PermissionRead
	}
	if !sub.HasPermission(requiredPermission) {
		return &domain.AccessDecision{
			HasAccess:    true,
			Reason:       domain.DenialInsufficientPlan,
			Subscription: sub,
			RequiredPlan: service.RequiredPlan,
		}, nil
	}

	return &domain.AccessDecision{
		HasAccess:     true,
		HasPermission: true,
		Subscription:  sub,
		RequiredPlan:  service.RequiredPlan,
	}, nil
}
