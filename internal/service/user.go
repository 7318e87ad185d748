package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jaisonoliveira/metodo-pds-app/internal/auth"
	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("email, password and name are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// UserStore is the slice of the repository registration and login need.
type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User) error
	CreateProfile(ctx context.Context, userID uuid.UUID, email string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	SaveContact(ctx context.Context, c *model.Contact) error
	GetPendingPaymentsByEmail(ctx context.Context, email string) ([]model.PendingPayment, error)
	DeletePendingPayment(ctx context.Context, id uuid.UUID) error
	ActivateSubscription(ctx context.Context, userID uuid.UUID, email, orderID string, subscriptionID *string) error
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
}

type RegisterInput struct {
	Email      string
	Password   string
	Name       string
	Whatsapp   string
	ReferrerID uuid.UUID
}

type UserService struct {
	store       UserStore
	referralSvc *ReferralService
	jwtSecret   string
}

func NewUserService(store UserStore, referralSvc *ReferralService, cfg *config.Config) *UserService {
	return &UserService{
		store:       store,
		referralSvc: referralSvc,
		jwtSecret:   cfg.Server.JWTSecret,
	}
}

// Register creates the user and their profile, then runs the registration
// side effects: contact capture and referral recording are best-effort, while
// pending payments for the email are applied so a purchase made before
// sign-up activates the subscription immediately.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return nil, "", ErrMissingFields
	}
	if len(input.Password) < 6 {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if input.Whatsapp != "" {
		user.Whatsapp = &input.Whatsapp
	}
	if input.ReferrerID != uuid.Nil {
		referrerID := input.ReferrerID
		user.ReferredBy = &referrerID
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}
	if err := s.store.CreateProfile(ctx, user.ID, user.Email); err != nil {
		return nil, "", fmt.Errorf("failed to create profile: %w", err)
	}

	if input.Whatsapp != "" {
		contact := &model.Contact{
			ID:       uuid.New(),
			Name:     user.Name,
			Email:    user.Email,
			Whatsapp: input.Whatsapp,
		}
		if err := s.store.SaveContact(ctx, contact); err != nil {
			log.Printf("Failed to save WhatsApp contact for %s: %v", user.Email, err)
		}
	}

	// Referral bookkeeping must never block registration.
	if input.ReferrerID != uuid.Nil {
		if err := s.referralSvc.RecordReferral(ctx, input.ReferrerID, user.ID); err != nil {
			log.Printf("Failed to record referral for %s: %v", user.Email, err)
		}
	}

	if err := s.reconcilePendingPayments(ctx, user); err != nil {
		log.Printf("Failed to reconcile pending payments for %s: %v", user.Email, err)
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Email, false, config.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// reconcilePendingPayments applies payments received before the user existed:
// each pending row activates the subscription, appends a completed
// transaction, and is deleted.
func (s *UserService) reconcilePendingPayments(ctx context.Context, user *model.User) error {
	pending, err := s.store.GetPendingPaymentsByEmail(ctx, user.Email)
	if err != nil {
		return err
	}

	for _, p := range pending {
		if err := s.store.ActivateSubscription(ctx, user.ID, user.Email, p.OrderID, nil); err != nil {
			return fmt.Errorf("failed to apply pending payment %s: %w", p.OrderID, err)
		}

		productName := p.ProductName
		if err := s.store.CreateTransaction(ctx, &model.Transaction{
			ID:            uuid.New(),
			UserID:        user.ID,
			OrderID:       p.OrderID,
			EventType:     model.EventOrderPaid,
			Amount:        p.Amount,
			CustomerEmail: user.Email,
			ProductName:   &productName,
			Status:        model.TransactionCompleted,
		}); err != nil {
			return fmt.Errorf("failed to record pending transaction %s: %w", p.OrderID, err)
		}

		if err := s.store.DeletePendingPayment(ctx, p.ID); err != nil {
			return err
		}
		log.Printf("Pending payment applied: order=%s user=%s", p.OrderID, user.Email)
	}

	return nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID, user.Email, false, config.SessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return s.store.GetProfile(ctx, userID)
}
