package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var (
	ErrReferralNotFound = errors.New("referral not found")
	ErrReferralExists   = errors.New("referral already recorded for this user")
)

func (r *Repository) CreateReferral(ctx context.Context, referral *model.Referral) error {
	query := `
		INSERT INTO referrals (id, referrer_id, referee_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		referral.ID,
		referral.ReferrerID,
		referral.RefereeID,
	).Scan(&referral.CreatedAt)
	if err != nil && strings.Contains(err.Error(), "referrals_referee_id_key") {
		return ErrReferralExists
	}
	return err
}

func (r *Repository) GetReferralByReferee(ctx context.Context, refereeID uuid.UUID) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral, "SELECT * FROM referrals WHERE referee_id = $1", refereeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReferralNotFound
		}
		return nil, err
	}
	return &referral, nil
}

func (r *Repository) CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM referrals WHERE referrer_id = $1", referrerID)
	return count, err
}

func (r *Repository) ListReferrals(ctx context.Context, referrerID uuid.UUID) ([]model.Referral, error) {
	var referrals []model.Referral
	err := r.db.SelectContext(ctx, &referrals,
		"SELECT * FROM referrals WHERE referrer_id = $1 ORDER BY created_at DESC", referrerID)
	return referrals, err
}

// GrantReferralCredits adds the bonus to the referrer's balance only when the
// current referral count is a positive multiple of the threshold. The count
// check and the increment run in one statement so concurrent referrals for the
// same referrer cannot lose a bonus to a read-modify-write race.
func (r *Repository) GrantReferralCredits(ctx context.Context, referrerID uuid.UUID, bonus, threshold int) (int, bool, error) {
	var credits int
	err := r.db.QueryRowContext(ctx, `
		UPDATE user_profiles SET
			credits = credits + $2,
			updated_at = NOW()
		WHERE user_id = $1
		  AND (SELECT COUNT(*) FROM referrals WHERE referrer_id = $1) > 0
		  AND (SELECT COUNT(*) FROM referrals WHERE referrer_id = $1) % $3 = 0
		RETURNING credits`,
		referrerID, bonus, threshold,
	).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return credits, true, nil
}

func (r *Repository) CountAllReferrals(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM referrals")
	return count, err
}
