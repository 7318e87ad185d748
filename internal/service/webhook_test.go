package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func webhookBody(t *testing.T, event, orderID, email string, amount float64) []byte {
	t.Helper()
	payload := model.WebhookPayload{
		Event:    event,
		OrderID:  orderID,
		Customer: model.WebhookCustomer{Email: email, Name: "Cliente"},
		Product:  model.WebhookProduct{ID: "prod-1", Name: "Plano PRO"},
		Amount:   amount,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestProcessOrderPaid(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	raw := webhookBody(t, model.EventOrderPaid, "order-1", user.Email, 97.0)
	if err := svc.Process(ctx, raw); err != nil {
		t.Fatalf("Process: %v", err)
	}

	profile := store.profiles[user.ID]
	if !profile.IsPro {
		t.Error("profile is not pro after paid event")
	}
	if profile.Status != model.SubscriptionActive {
		t.Errorf("status = %s, want active", profile.Status)
	}
	if profile.OrderID == nil || *profile.OrderID != "order-1" {
		t.Errorf("order id not recorded: %v", profile.OrderID)
	}

	if len(store.transactions) != 1 {
		t.Fatalf("transactions = %d, want 1", len(store.transactions))
	}
	tx := store.transactions[0]
	if tx.Status != model.TransactionCompleted {
		t.Errorf("transaction status = %s, want completed", tx.Status)
	}
	if tx.Amount != 97.0 {
		t.Errorf("transaction amount = %v, want 97", tx.Amount)
	}
}

func TestProcessSubscriptionStarted(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("assinante@example.com")

	payload := model.WebhookPayload{
		Event:        model.EventSubscriptionStarted,
		OrderID:      "order-2",
		Customer:     model.WebhookCustomer{Email: user.Email},
		Product:      model.WebhookProduct{Name: "Plano PRO"},
		Subscription: &model.WebhookSubscription{ID: "sub-9", Status: "active"},
		Amount:       97.0,
	}
	raw, _ := json.Marshal(payload)

	if err := svc.Process(ctx, raw); err != nil {
		t.Fatalf("Process: %v", err)
	}

	profile := store.profiles[user.ID]
	if !profile.IsPro {
		t.Error("profile is not pro after subscription.started")
	}
	if profile.SubscriptionID == nil || *profile.SubscriptionID != "sub-9" {
		t.Errorf("subscription id not recorded: %v", profile.SubscriptionID)
	}
}

func TestProcessPaidUnknownEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)

	raw := webhookBody(t, model.EventOrderPaid, "order-3", "desconhecido@example.com", 97.0)
	if err := svc.Process(ctx, raw); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(store.pending) != 1 {
		t.Fatalf("pending payments = %d, want 1", len(store.pending))
	}
	p := store.pending[0]
	if p.Email != "desconhecido@example.com" || p.OrderID != "order-3" || p.Amount != 97.0 {
		t.Errorf("pending payment = %+v", p)
	}
	if len(store.transactions) != 0 {
		t.Errorf("transactions = %d, want 0", len(store.transactions))
	}
}

func TestProcessSubscriptionCanceled(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	if err := svc.Process(ctx, webhookBody(t, model.EventOrderPaid, "order-4", user.Email, 97.0)); err != nil {
		t.Fatalf("Process paid: %v", err)
	}
	if err := svc.Process(ctx, webhookBody(t, model.EventSubscriptionCanceled, "order-4", user.Email, 97.0)); err != nil {
		t.Fatalf("Process canceled: %v", err)
	}

	profile := store.profiles[user.ID]
	if profile.Status != model.SubscriptionCanceled {
		t.Errorf("status = %s, want canceled", profile.Status)
	}
	// Access is kept until the paid period runs out.
	if !profile.IsPro {
		t.Error("cancellation should not revoke pro access")
	}
	if profile.CanceledAt == nil {
		t.Error("canceled_at not set")
	}

	if len(store.transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(store.transactions))
	}
	tx := store.transactions[1]
	if tx.Status != model.TransactionCanceled || tx.Amount != 0 {
		t.Errorf("cancel transaction = %+v", tx)
	}
}

func TestProcessOrderRefunded(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	if err := svc.Process(ctx, webhookBody(t, model.EventOrderPaid, "order-5", user.Email, 97.0)); err != nil {
		t.Fatalf("Process paid: %v", err)
	}
	if err := svc.Process(ctx, webhookBody(t, model.EventOrderRefunded, "order-5", user.Email, 97.0)); err != nil {
		t.Fatalf("Process refunded: %v", err)
	}

	profile := store.profiles[user.ID]
	if profile.IsPro {
		t.Error("refund should revoke pro access")
	}
	if profile.Status != model.SubscriptionRefunded {
		t.Errorf("status = %s, want refunded", profile.Status)
	}

	tx := store.transactions[1]
	if tx.Status != model.TransactionRefunded {
		t.Errorf("refund transaction status = %s", tx.Status)
	}
	if tx.Amount != -97.0 {
		t.Errorf("refund amount = %v, want -97", tx.Amount)
	}
}

func TestProcessChargeback(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	if err := svc.Process(ctx, webhookBody(t, model.EventOrderPaid, "order-6", user.Email, 50.0)); err != nil {
		t.Fatalf("Process paid: %v", err)
	}
	if err := svc.Process(ctx, webhookBody(t, model.EventOrderChargeback, "order-6", user.Email, 50.0)); err != nil {
		t.Fatalf("Process chargeback: %v", err)
	}

	if store.profiles[user.ID].IsPro {
		t.Error("chargeback should revoke pro access")
	}
	if store.transactions[1].Amount != -50.0 {
		t.Errorf("chargeback amount = %v, want -50", store.transactions[1].Amount)
	}
}

func TestProcessUnknownEvent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	if err := svc.Process(ctx, webhookBody(t, "order.updated", "order-7", user.Email, 97.0)); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if store.profiles[user.ID].IsPro {
		t.Error("unknown event must not change subscription state")
	}
	if len(store.transactions) != 0 {
		t.Errorf("transactions = %d, want 0", len(store.transactions))
	}
}

func TestProcessInvalidPayload(t *testing.T) {
	ctx := context.Background()
	svc := NewWebhookService(newFakeStore(), nil)

	t.Run("malformed json", func(t *testing.T) {
		err := svc.Process(ctx, []byte("{not json"))
		if !errors.Is(err, model.ErrInvalidWebhookPayload) {
			t.Errorf("err = %v, want ErrInvalidWebhookPayload", err)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		err := svc.Process(ctx, []byte(`{"event":"order.paid"}`))
		if !errors.Is(err, model.ErrInvalidWebhookPayload) {
			t.Errorf("err = %v, want ErrInvalidWebhookPayload", err)
		}
	})
}

func TestProcessDuplicateDelivery(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, newFakeDedup())
	user := store.addUser("cliente@example.com")

	raw := webhookBody(t, model.EventOrderPaid, "order-8", user.Email, 97.0)
	if err := svc.Process(ctx, raw); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if err := svc.Process(ctx, raw); err != nil {
		t.Fatalf("second Process: %v", err)
	}

	if len(store.transactions) != 1 {
		t.Errorf("transactions = %d, want 1 after duplicate delivery", len(store.transactions))
	}
}

func TestProcessDedupFailureStillProcesses(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	dedup := newFakeDedup()
	dedup.errs = errors.New("redis down")
	svc := NewWebhookService(store, dedup)
	user := store.addUser("cliente@example.com")

	if err := svc.Process(ctx, webhookBody(t, model.EventOrderPaid, "order-9", user.Email, 97.0)); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !store.profiles[user.ID].IsPro {
		t.Error("event should be processed when dedup is unavailable")
	}
}

func TestDeadLetterAndReplay(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewWebhookService(store, nil)
	user := store.addUser("cliente@example.com")

	store.activateErr = errors.New("db timeout")
	raw := webhookBody(t, model.EventOrderPaid, "order-10", user.Email, 97.0)
	if err := svc.Process(ctx, raw); err == nil {
		t.Fatal("Process should fail while activation errors")
	}

	letters, err := svc.ListDeadLetters(ctx, true, 50, 0)
	if err != nil {
		t.Fatalf("ListDeadLetters: %v", err)
	}
	if len(letters) != 1 {
		t.Fatalf("dead letters = %d, want 1", len(letters))
	}
	dl := letters[0]
	if dl.EventType != model.EventOrderPaid || dl.OrderID != "order-10" {
		t.Errorf("dead letter = %+v", dl)
	}

	store.activateErr = nil
	if err := svc.ReplayDeadLetter(ctx, dl.ID); err != nil {
		t.Fatalf("ReplayDeadLetter: %v", err)
	}

	if !store.profiles[user.ID].IsPro {
		t.Error("replay should activate the subscription")
	}
	if store.deadLetters[dl.ID].ReplayedAt == nil {
		t.Error("replayed dead letter not marked")
	}

	// Replaying again is a no-op.
	if err := svc.ReplayDeadLetter(ctx, dl.ID); err != nil {
		t.Fatalf("second ReplayDeadLetter: %v", err)
	}
	if len(store.transactions) != 1 {
		t.Errorf("transactions = %d, want 1 after repeated replay", len(store.transactions))
	}
}
