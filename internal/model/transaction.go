package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionCanceled  TransactionStatus = "canceled"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction is an append-only audit record of one payment-lifecycle event
// applied to a user. Refunds and chargebacks carry a negative amount.
type Transaction struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	UserID        uuid.UUID         `json:"user_id" db:"user_id"`
	OrderID       string            `json:"order_id" db:"order_id"`
	EventType     string            `json:"event_type" db:"event_type"`
	Amount        float64           `json:"amount" db:"amount"`
	CustomerEmail string            `json:"customer_email" db:"customer_email"`
	ProductName   *string           `json:"product_name,omitempty" db:"product_name"`
	Status        TransactionStatus `json:"status" db:"status"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
}

// PendingPayment is a paid-class event received for an email with no matching
// user yet. It is applied and deleted when that email registers.
type PendingPayment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	OrderID     string    `json:"order_id" db:"order_id"`
	Amount      float64   `json:"amount" db:"amount"`
	ProductName string    `json:"product_name" db:"product_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DeadLetter holds a webhook event whose handler failed, so reconciliation can
// be replayed instead of the event being silently dropped.
type DeadLetter struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	EventType  string     `json:"event_type" db:"event_type"`
	OrderID    string     `json:"order_id" db:"order_id"`
	Payload    []byte     `json:"payload" db:"payload"`
	Error      string     `json:"error" db:"error"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	ReplayedAt *time.Time `json:"replayed_at,omitempty" db:"replayed_at"`
}
