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

// PostgresSubscriptionRepository implements SubscriptionRepository using PostgreSQL
type PostgresSubscriptionRepository struct {
	db     *database.Postgres
	logger *zap.Logger
}

// NewSubscriptionRepository creates a new PostgresSubscriptionRepository
func NewSubscriptionRepository(db *database.Postgres, logger *zap.Logger) domain.SubscriptionRepository {
	return &PostgresSubscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresSubscriptionRepository) FindService(ctx context.Context, serviceID string) (*domain.Service, error) {
	service := &domain.Service{}

	err := r.db.QueryRow(ctx, `
		SELECT id, name, required_plan, created_at
		FROM services WHERE id = $1
	`, serviceID).Scan(&service.ID, &service.Name, &service.RequiredPlan, &service.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}

	return service, nil
}

func (r *PostgresSubscriptionRepository) FindSubscription(ctx context.Context, userID, serviceID string) (*domain.Subscription, error) {
	sub := &domain.Subscription{}
	var permissions []byte

	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, service_id, plan, status, current_period_end, permissions, created_at, updated_at
		FROM subscriptions WHERE user_id = $1 AND service_id = $2
	`, userID, serviceID).Scan(&sub.ID, &sub.UserID, &sub.ServiceID, &sub.Plan, &sub.Status, &sub.CurrentPeriodEnd, &permissions, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(permissions, &sub.Permissions); err != nil {
		return nil, err
	}

	return sub, nil
}
