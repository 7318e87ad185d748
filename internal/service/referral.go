package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

var (
	ErrSelfReferral = errors.New("user cannot refer themselves")
	ErrNoReferrer   = errors.New("referrer does not exist")
)

// ReferralStore is the slice of the repository the referral ledger needs.
type ReferralStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	CreateReferral(ctx context.Context, referral *model.Referral) error
	GetReferralByReferee(ctx context.Context, refereeID uuid.UUID) (*model.Referral, error)
	CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error)
	ListReferrals(ctx context.Context, referrerID uuid.UUID) ([]model.Referral, error)
	GrantReferralCredits(ctx context.Context, referrerID uuid.UUID, bonus, threshold int) (int, bool, error)
}

type ReferralService struct {
	store     ReferralStore
	threshold int
	bonus     int
	baseURL   string
}

func NewReferralService(store ReferralStore, cfg *config.Config) *ReferralService {
	threshold := cfg.Referral.Threshold
	if threshold <= 0 {
		threshold = model.DefaultReferralThreshold
	}
	bonus := cfg.Referral.BonusAmount
	if bonus <= 0 {
		bonus = model.DefaultReferralBonus
	}

	return &ReferralService{
		store:     store,
		threshold: threshold,
		bonus:     bonus,
		baseURL:   cfg.Server.AppBaseURL,
	}
}

// RecordReferral writes the referrer->referee edge and applies the credit
// bonus when the referrer's count lands on a threshold multiple. One row per
// referee: duplicates come back as repository.ErrReferralExists.
func (s *ReferralService) RecordReferral(ctx context.Context, referrerID, refereeID uuid.UUID) error {
	if referrerID == refereeID {
		return ErrSelfReferral
	}

	if _, err := s.store.GetUser(ctx, referrerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrNoReferrer
		}
		return err
	}

	if _, err := s.store.GetReferralByReferee(ctx, refereeID); err == nil {
		return repository.ErrReferralExists
	} else if !errors.Is(err, repository.ErrReferralNotFound) {
		return err
	}

	referral := &model.Referral{
		ID:         uuid.New(),
		ReferrerID: referrerID,
		RefereeID:  refereeID,
	}
	if err := s.store.CreateReferral(ctx, referral); err != nil {
		return err
	}

	credits, granted, err := s.store.GrantReferralCredits(ctx, referrerID, s.bonus, s.threshold)
	if err != nil {
		return fmt.Errorf("failed to evaluate credit bonus: %w", err)
	}
	if granted {
		log.Printf("Referral bonus granted: user %s now has R$%d in credits", referrerID, credits)
	}

	return nil
}

func (s *ReferralService) CountReferrals(ctx context.Context, referrerID uuid.UUID) (int, error) {
	return s.store.CountReferrals(ctx, referrerID)
}

func (s *ReferralService) ListReferrals(ctx context.Context, referrerID uuid.UUID) ([]model.Referral, error) {
	return s.store.ListReferrals(ctx, referrerID)
}

func (s *ReferralService) GetStats(ctx context.Context, userID uuid.UUID) (*model.ReferralStats, error) {
	count, err := s.store.CountReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	credits := 0
	profile, err := s.store.GetProfile(ctx, userID)
	if err == nil {
		credits = profile.Credits
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	return &model.ReferralStats{TotalReferrals: count, Credits: credits}, nil
}

// ReferralLink builds the invite URL a user shares.
func (s *ReferralService) ReferralLink(userID uuid.UUID) string {
	return s.baseURL + "/register?ref=" + userID.String()
}

// ParseReferrerID extracts the referrer id from a referral link's ref query
// parameter. Returns uuid.Nil when the URL carries no usable id.
func ParseReferrerID(rawURL string) uuid.UUID {
	u, err := url.Parse(rawURL)
	if err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(u.Query().Get("ref"))
	if err != nil {
		return uuid.Nil
	}
	return id
}
