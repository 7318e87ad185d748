package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaisonoliveira/metodo-pds-app/internal/auth"
	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

const adminPasswordKey = "admin_password_hash"

var (
	ErrAdminPassword      = errors.New("invalid admin password")
	ErrAdminNotConfigured = errors.New("admin password is not configured")
)

type AdminStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	CountUsers(ctx context.Context) (int, error)
	CountProUsers(ctx context.Context) (int, error)
	CountAllReferrals(ctx context.Context) (int, error)
	CountPendingPayments(ctx context.Context) (int, error)
	CountContacts(ctx context.Context) (int, error)
	SumTransactionAmounts(ctx context.Context) (float64, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error)
	ListPendingPayments(ctx context.Context, limit, offset int) ([]model.PendingPayment, error)
}

// AdminService guards the admin panel. The panel password lives as a bcrypt
// hash in the settings table and is changed through a settings write, never
// through process state.
type AdminService struct {
	store     AdminStore
	jwtSecret string
}

func NewAdminService(store AdminStore, cfg *config.Config) *AdminService {
	return &AdminService{store: store, jwtSecret: cfg.Server.JWTSecret}
}

// EnsurePassword seeds the password setting on first start. Existing hashes
// are never overwritten from the environment.
func (s *AdminService) EnsurePassword(ctx context.Context, initial string) error {
	_, err := s.store.GetSetting(ctx, adminPasswordKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrSettingNotFound) {
		return err
	}
	if initial == "" {
		log.Println("Admin password not configured; admin panel is locked until ADMIN_INITIAL_PASSWORD is set")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(initial), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	return s.store.SetSetting(ctx, adminPasswordKey, string(hash))
}

func (s *AdminService) Login(ctx context.Context, password string) (string, error) {
	hash, err := s.store.GetSetting(ctx, adminPasswordKey)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return "", ErrAdminNotConfigured
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", ErrAdminPassword
	}

	return auth.GenerateToken(s.jwtSecret, uuid.Nil, "admin", true, config.AdminSessionTTL)
}

func (s *AdminService) ChangePassword(ctx context.Context, current, newPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	hash, err := s.store.GetSetting(ctx, adminPasswordKey)
	if err != nil {
		if errors.Is(err, repository.ErrSettingNotFound) {
			return ErrAdminNotConfigured
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(current)) != nil {
		return ErrAdminPassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	return s.store.SetSetting(ctx, adminPasswordKey, string(newHash))
}

type AdminStats struct {
	TotalUsers      int     `json:"total_users"`
	ProUsers        int     `json:"pro_users"`
	TotalReferrals  int     `json:"total_referrals"`
	PendingPayments int     `json:"pending_payments"`
	Contacts        int     `json:"contacts"`
	Revenue         float64 `json:"revenue"`
}

func (s *AdminService) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error

	if stats.TotalUsers, err = s.store.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.ProUsers, err = s.store.CountProUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalReferrals, err = s.store.CountAllReferrals(ctx); err != nil {
		return nil, err
	}
	if stats.PendingPayments, err = s.store.CountPendingPayments(ctx); err != nil {
		return nil, err
	}
	if stats.Contacts, err = s.store.CountContacts(ctx); err != nil {
		return nil, err
	}
	if stats.Revenue, err = s.store.SumTransactionAmounts(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *AdminService) ListTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListTransactions(ctx, limit, offset)
}

func (s *AdminService) ListPendingPayments(ctx context.Context, limit, offset int) ([]model.PendingPayment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.ListPendingPayments(ctx, limit, offset)
}
