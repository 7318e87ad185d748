package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

type fakeAdminStore struct {
	settings map[string]string

	users, proUsers, referrals, pending, contacts int
	revenue                                       float64
}

func newFakeAdminStore() *fakeAdminStore {
	return &fakeAdminStore{settings: make(map[string]string)}
}

func (f *fakeAdminStore) GetSetting(_ context.Context, key string) (string, error) {
	value, ok := f.settings[key]
	if !ok {
		return "", repository.ErrSettingNotFound
	}
	return value, nil
}

func (f *fakeAdminStore) SetSetting(_ context.Context, key, value string) error {
	f.settings[key] = value
	return nil
}

func (f *fakeAdminStore) CountUsers(_ context.Context) (int, error)           { return f.users, nil }
func (f *fakeAdminStore) CountProUsers(_ context.Context) (int, error)        { return f.proUsers, nil }
func (f *fakeAdminStore) CountAllReferrals(_ context.Context) (int, error)    { return f.referrals, nil }
func (f *fakeAdminStore) CountPendingPayments(_ context.Context) (int, error) { return f.pending, nil }
func (f *fakeAdminStore) CountContacts(_ context.Context) (int, error)        { return f.contacts, nil }
func (f *fakeAdminStore) SumTransactionAmounts(_ context.Context) (float64, error) {
	return f.revenue, nil
}
func (f *fakeAdminStore) ListTransactions(_ context.Context, _, _ int) ([]model.Transaction, error) {
	return nil, nil
}
func (f *fakeAdminStore) ListPendingPayments(_ context.Context, _, _ int) ([]model.PendingPayment, error) {
	return nil, nil
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded password logs in", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewAdminService(store, testConfig())

		if err := svc.EnsurePassword(ctx, "super-secret"); err != nil {
			t.Fatalf("EnsurePassword: %v", err)
		}

		token, err := svc.Login(ctx, "super-secret")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if token == "" {
			t.Error("empty token")
		}

		if _, err := svc.Login(ctx, "wrong"); !errors.Is(err, ErrAdminPassword) {
			t.Errorf("wrong password err = %v, want ErrAdminPassword", err)
		}
	})

	t.Run("unconfigured panel stays locked", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewAdminService(store, testConfig())

		if err := svc.EnsurePassword(ctx, ""); err != nil {
			t.Fatalf("EnsurePassword: %v", err)
		}
		if _, err := svc.Login(ctx, "anything"); !errors.Is(err, ErrAdminNotConfigured) {
			t.Errorf("err = %v, want ErrAdminNotConfigured", err)
		}
	})

	t.Run("seed never overwrites existing hash", func(t *testing.T) {
		store := newFakeAdminStore()
		svc := NewAdminService(store, testConfig())

		if err := svc.EnsurePassword(ctx, "original"); err != nil {
			t.Fatalf("EnsurePassword: %v", err)
		}
		if err := svc.EnsurePassword(ctx, "from-env-later"); err != nil {
			t.Fatalf("second EnsurePassword: %v", err)
		}

		if _, err := svc.Login(ctx, "original"); err != nil {
			t.Errorf("original password rejected: %v", err)
		}
		if _, err := svc.Login(ctx, "from-env-later"); !errors.Is(err, ErrAdminPassword) {
			t.Errorf("env password accepted after seed: %v", err)
		}
	})
}

func TestAdminChangePassword(t *testing.T) {
	ctx := context.Background()
	store := newFakeAdminStore()
	svc := NewAdminService(store, testConfig())

	if err := svc.EnsurePassword(ctx, "old-password"); err != nil {
		t.Fatalf("EnsurePassword: %v", err)
	}

	if err := svc.ChangePassword(ctx, "wrong", "new-password"); !errors.Is(err, ErrAdminPassword) {
		t.Errorf("wrong current err = %v, want ErrAdminPassword", err)
	}
	if err := svc.ChangePassword(ctx, "old-password", "123"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("short new err = %v, want ErrPasswordTooShort", err)
	}

	if err := svc.ChangePassword(ctx, "old-password", "new-password"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(ctx, "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := svc.Login(ctx, "old-password"); !errors.Is(err, ErrAdminPassword) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestAdminStats(t *testing.T) {
	store := newFakeAdminStore()
	store.users = 120
	store.proUsers = 45
	store.referrals = 30
	store.pending = 3
	store.contacts = 80
	store.revenue = 4365.0

	svc := NewAdminService(store, testConfig())
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	want := AdminStats{
		TotalUsers:      120,
		ProUsers:        45,
		TotalReferrals:  30,
		PendingPayments: 3,
		Contacts:        80,
		Revenue:         4365.0,
	}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}
