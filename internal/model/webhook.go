package model

import "errors"

// Kiwify webhook event types. Events outside this set are acknowledged and
// ignored.
const (
	EventOrderPaid            = "order.paid"
	EventOrderRefunded        = "order.refunded"
	EventOrderChargeback      = "order.chargeback"
	EventSubscriptionStarted  = "subscription.started"
	EventSubscriptionCanceled = "subscription.canceled"
)

var ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

type WebhookCustomer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type WebhookProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type WebhookSubscription struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type WebhookPayload struct {
	Event        string               `json:"event"`
	OrderID      string               `json:"order_id"`
	OrderRef     string               `json:"order_ref"`
	Customer     WebhookCustomer      `json:"customer"`
	Product      WebhookProduct       `json:"product"`
	Subscription *WebhookSubscription `json:"subscription,omitempty"`
	Amount       float64              `json:"amount"`
	CreatedAt    string               `json:"created_at"`
}

// Validate rejects payloads missing the fields every handler needs.
func (p *WebhookPayload) Validate() error {
	if p.Event == "" || p.OrderID == "" || p.Customer.Email == "" {
		return ErrInvalidWebhookPayload
	}
	return nil
}
