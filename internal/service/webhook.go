package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

// WebhookStore is the slice of the repository payment reconciliation needs.
type WebhookStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ActivateSubscription(ctx context.Context, userID uuid.UUID, email, orderID string, subscriptionID *string) error
	CancelSubscription(ctx context.Context, userID uuid.UUID) error
	RefundSubscription(ctx context.Context, userID uuid.UUID) error
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	CreatePendingPayment(ctx context.Context, p *model.PendingPayment) error
	CreateDeadLetter(ctx context.Context, d *model.DeadLetter) error
	GetDeadLetter(ctx context.Context, id uuid.UUID) (*model.DeadLetter, error)
	ListDeadLetters(ctx context.Context, unreplayedOnly bool, limit, offset int) ([]model.DeadLetter, error)
	MarkDeadLetterReplayed(ctx context.Context, id uuid.UUID) error
}

// Deduper guards against duplicate webhook deliveries.
type Deduper interface {
	Once(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

const webhookDedupTTL = 48 * time.Hour

// WebhookService turns Kiwify payment events into subscription-state
// transitions. Handler failures land in the dead-letter table so they can be
// replayed; the HTTP layer acknowledges every delivery regardless.
type WebhookService struct {
	store WebhookStore
	dedup Deduper
}

func NewWebhookService(store WebhookStore, dedup Deduper) *WebhookService {
	return &WebhookService{store: store, dedup: dedup}
}

// Process parses and applies one webhook delivery. The returned error is for
// logging only: callers must still acknowledge the provider with success.
func (s *WebhookService) Process(ctx context.Context, raw []byte) error {
	var payload model.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidWebhookPayload, err)
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	log.Printf("Webhook received: event=%s order=%s email=%s",
		payload.Event, payload.OrderID, payload.Customer.Email)

	if s.dedup != nil {
		key := "webhook:" + payload.OrderID + ":" + payload.Event
		first, err := s.dedup.Once(ctx, key, webhookDedupTTL)
		if err != nil {
			// Dedup is best-effort: process anyway when redis is down.
			log.Printf("Webhook dedup check failed, processing anyway: %v", err)
		} else if !first {
			log.Printf("Duplicate webhook delivery ignored: order=%s event=%s", payload.OrderID, payload.Event)
			return nil
		}
	}

	if err := s.dispatch(ctx, &payload); err != nil {
		s.deadLetter(ctx, &payload, raw, err)
		return err
	}
	return nil
}

func (s *WebhookService) dispatch(ctx context.Context, payload *model.WebhookPayload) error {
	switch payload.Event {
	case model.EventOrderPaid, model.EventSubscriptionStarted:
		return s.handlePaid(ctx, payload)
	case model.EventSubscriptionCanceled:
		return s.handleCanceled(ctx, payload)
	case model.EventOrderRefunded, model.EventOrderChargeback:
		return s.handleRefunded(ctx, payload)
	default:
		log.Printf("Unhandled webhook event: %s", payload.Event)
		return nil
	}
}

func (s *WebhookService) handlePaid(ctx context.Context, payload *model.WebhookPayload) error {
	user, err := s.store.GetUserByEmail(ctx, payload.Customer.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Printf("No user for %s, saving pending payment", payload.Customer.Email)
		return s.store.CreatePendingPayment(ctx, &model.PendingPayment{
			ID:          uuid.New(),
			Email:       payload.Customer.Email,
			OrderID:     payload.OrderID,
			Amount:      payload.Amount,
			ProductName: payload.Product.Name,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	var subscriptionID *string
	if payload.Subscription != nil {
		subscriptionID = &payload.Subscription.ID
	}

	if err := s.store.ActivateSubscription(ctx, user.ID, payload.Customer.Email, payload.OrderID, subscriptionID); err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	productName := payload.Product.Name
	if err := s.store.CreateTransaction(ctx, &model.Transaction{
		ID:            uuid.New(),
		UserID:        user.ID,
		OrderID:       payload.OrderID,
		EventType:     payload.Event,
		Amount:        payload.Amount,
		CustomerEmail: payload.Customer.Email,
		ProductName:   &productName,
		Status:        model.TransactionCompleted,
	}); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	log.Printf("User upgraded to PRO: %s", user.Email)
	return nil
}

func (s *WebhookService) handleCanceled(ctx context.Context, payload *model.WebhookPayload) error {
	user, err := s.store.GetUserByEmail(ctx, payload.Customer.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Printf("No user for cancellation: %s", payload.Customer.Email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.store.CancelSubscription(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	if err := s.store.CreateTransaction(ctx, &model.Transaction{
		ID:            uuid.New(),
		UserID:        user.ID,
		OrderID:       payload.OrderID,
		EventType:     payload.Event,
		Amount:        0,
		CustomerEmail: payload.Customer.Email,
		Status:        model.TransactionCanceled,
	}); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	log.Printf("Subscription canceled: %s", user.Email)
	return nil
}

func (s *WebhookService) handleRefunded(ctx context.Context, payload *model.WebhookPayload) error {
	user, err := s.store.GetUserByEmail(ctx, payload.Customer.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Printf("No user for refund: %s", payload.Customer.Email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.store.RefundSubscription(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to refund subscription: %w", err)
	}

	if err := s.store.CreateTransaction(ctx, &model.Transaction{
		ID:            uuid.New(),
		UserID:        user.ID,
		OrderID:       payload.OrderID,
		EventType:     payload.Event,
		Amount:        -payload.Amount,
		CustomerEmail: payload.Customer.Email,
		Status:        model.TransactionRefunded,
	}); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	log.Printf("Refund processed: %s", user.Email)
	return nil
}

func (s *WebhookService) deadLetter(ctx context.Context, payload *model.WebhookPayload, raw []byte, cause error) {
	dl := &model.DeadLetter{
		ID:        uuid.New(),
		EventType: payload.Event,
		OrderID:   payload.OrderID,
		Payload:   raw,
		Error:     cause.Error(),
	}
	if err := s.store.CreateDeadLetter(ctx, dl); err != nil {
		log.Printf("Failed to dead-letter webhook event %s/%s: %v", payload.Event, payload.OrderID, err)
	}
}

func (s *WebhookService) ListDeadLetters(ctx context.Context, unreplayedOnly bool, limit, offset int) ([]model.DeadLetter, error) {
	return s.store.ListDeadLetters(ctx, unreplayedOnly, limit, offset)
}

// ReplayDeadLetter re-runs a failed event against the current state. A
// successful replay is marked so it is not run twice.
func (s *WebhookService) ReplayDeadLetter(ctx context.Context, id uuid.UUID) error {
	dl, err := s.store.GetDeadLetter(ctx, id)
	if err != nil {
		return err
	}
	if dl.ReplayedAt != nil {
		return nil
	}

	var payload model.WebhookPayload
	if err := json.Unmarshal(dl.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidWebhookPayload, err)
	}

	if err := s.dispatch(ctx, &payload); err != nil {
		return err
	}
	return s.store.MarkDeadLetterReplayed(ctx, id)
}
