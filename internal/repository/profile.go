package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var ErrProfileNotFound = errors.New("profile not found")

func (r *Repository) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, "SELECT * FROM user_profiles WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) CreateProfile(ctx context.Context, userID uuid.UUID, email string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, email, is_pro, subscription_status, credits)
		VALUES ($1, $2, FALSE, 'none', 0)
		ON CONFLICT (user_id) DO NOTHING`,
		userID, strings.ToLower(email))
	return err
}

// ActivateSubscription upserts the profile into the active state. Used for
// order.paid and subscription.started events and for pending-payment
// reconciliation at registration.
func (r *Repository) ActivateSubscription(ctx context.Context, userID uuid.UUID, email, orderID string, subscriptionID *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, email, is_pro, subscription_status, subscription_started_at,
			kiwify_order_id, kiwify_subscription_id, updated_at)
		VALUES ($1, $2, TRUE, 'active', NOW(), $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			email = EXCLUDED.email,
			is_pro = TRUE,
			subscription_status = 'active',
			subscription_started_at = NOW(),
			kiwify_order_id = EXCLUDED.kiwify_order_id,
			kiwify_subscription_id = EXCLUDED.kiwify_subscription_id,
			updated_at = NOW()`,
		userID, strings.ToLower(email), orderID, subscriptionID)
	return err
}

// CancelSubscription marks the subscription canceled. The pro flag is left
// untouched: access runs until the paid period ends.
func (r *Repository) CancelSubscription(ctx context.Context, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			subscription_status = 'canceled',
			subscription_canceled_at = NOW(),
			updated_at = NOW()
		WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RefundSubscription revokes pro access after a refund or chargeback.
func (r *Repository) RefundSubscription(ctx context.Context, userID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles SET
			is_pro = FALSE,
			subscription_status = 'refunded',
			subscription_canceled_at = NOW(),
			updated_at = NOW()
		WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *Repository) CountProUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_profiles WHERE is_pro")
	return count, err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}
