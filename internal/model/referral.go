package model

import (
	"time"

	"github.com/google/uuid"
)

// Referral records one completed invitation: referee registered through the
// referrer's link. At most one row exists per referee.
type Referral struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ReferrerID uuid.UUID `json:"referrer_id" db:"referrer_id"`
	RefereeID  uuid.UUID `json:"referee_id" db:"referee_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type ReferralStats struct {
	TotalReferrals int `json:"total_referrals"`
	Credits        int `json:"credits"`
}

// Default bonus configuration: every 5 completed referrals grant R$30.
const (
	DefaultReferralThreshold = 5
	DefaultReferralBonus     = 30
)
