package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Name         string     `json:"name" db:"name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Whatsapp     *string    `json:"whatsapp,omitempty" db:"whatsapp"`
	ReferredBy   *uuid.UUID `json:"referred_by,omitempty" db:"referred_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type SubscriptionStatus string

const (
	SubscriptionNone     SubscriptionStatus = "none"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionRefunded SubscriptionStatus = "refunded"
)

// Profile holds the subscription-relevant subset of a user record.
// Invariant: IsPro is true exactly when Status is active, and every status
// transition is backed by one Transaction row.
type Profile struct {
	UserID         uuid.UUID          `json:"user_id" db:"user_id"`
	Email          string             `json:"email" db:"email"`
	IsPro          bool               `json:"is_pro" db:"is_pro"`
	Status         SubscriptionStatus `json:"subscription_status" db:"subscription_status"`
	StartedAt      *time.Time         `json:"subscription_started_at,omitempty" db:"subscription_started_at"`
	CanceledAt     *time.Time         `json:"subscription_canceled_at,omitempty" db:"subscription_canceled_at"`
	OrderID        *string            `json:"kiwify_order_id,omitempty" db:"kiwify_order_id"`
	SubscriptionID *string            `json:"kiwify_subscription_id,omitempty" db:"kiwify_subscription_id"`
	Credits        int                `json:"credits" db:"credits"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}
