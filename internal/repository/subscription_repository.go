package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"callboard/internal/model"
)

type SubscriptionRepository interface {
	Set(ctx context.Context, userID uuid.UUID, subscribed bool) (*model.Subscription, error)
	Find(ctx context.Context, userID uuid.UUID) (*model.Subscription, error)
}

type postgresSubscriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresSubscriptionRepository(db *sqlx.DB) SubscriptionRepository {
	return &postgresSubscriptionRepository{db: db}
}

// Set creates the row on first use and overwrites the flag afterwards, so
// repeated submissions of the same form are harmless.
func (r *postgresSubscriptionRepository) Set(ctx context.Context, userID uuid.UUID, subscribed bool) (*model.Subscription, error) {
	query := `
		INSERT INTO newsletter_subscriptions (user_id, subscribed)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET subscribed = EXCLUDED.subscribed, updated_at = now()
		RETURNING user_id, subscribed, updated_at
	`

	var sub model.Subscription
	row := r.db.QueryRowxContext(ctx, query, userID, subscribed)
	err := row.Scan(&sub.UserID, &sub.Subscribed, &sub.UpdatedAt)

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *postgresSubscriptionRepository) Find(ctx context.Context, userID uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription
	query := `SELECT user_id, subscribed, updated_at FROM newsletter_subscriptions WHERE user_id = $1`
	err := r.db.GetContext(ctx, &sub, query, userID)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
