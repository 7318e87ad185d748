package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
)

// fakeStore is an in-memory stand-in for repository.Repository. It mirrors
// the database semantics the services rely on: unique emails, one referral
// row per referee, credit grants on threshold multiples.
type fakeStore struct {
	users         map[uuid.UUID]*model.User
	profiles      map[uuid.UUID]*model.Profile
	referrals     []model.Referral
	transactions  []model.Transaction
	pending       []model.PendingPayment
	deadLetters   map[uuid.UUID]*model.DeadLetter
	notifications []model.Notification
	prefs         map[uuid.UUID]*model.NotificationPrefs
	contacts      []model.Contact

	activateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*model.User),
		profiles:    make(map[uuid.UUID]*model.Profile),
		deadLetters: make(map[uuid.UUID]*model.DeadLetter),
		prefs:       make(map[uuid.UUID]*model.NotificationPrefs),
	}
}

// addUser registers a user with a profile, the way Register would.
func (f *fakeStore) addUser(email string) *model.User {
	user := &model.User{ID: uuid.New(), Email: email, Name: "Test User", CreatedAt: time.Now()}
	f.users[user.ID] = user
	f.profiles[user.ID] = &model.Profile{UserID: user.ID, Email: email, Status: model.SubscriptionNone}
	return user
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) CreateProfile(_ context.Context, userID uuid.UUID, email string) error {
	if _, ok := f.profiles[userID]; ok {
		return nil
	}
	f.profiles[userID] = &model.Profile{UserID: userID, Email: email, Status: model.SubscriptionNone}
	return nil
}

func (f *fakeStore) GetProfile(_ context.Context, userID uuid.UUID) (*model.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeStore) ActivateSubscription(_ context.Context, userID uuid.UUID, email, orderID string, subscriptionID *string) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	now := time.Now()
	profile, ok := f.profiles[userID]
	if !ok {
		profile = &model.Profile{UserID: userID, Email: email}
		f.profiles[userID] = profile
	}
	profile.IsPro = true
	profile.Status = model.SubscriptionActive
	profile.StartedAt = &now
	profile.OrderID = &orderID
	profile.SubscriptionID = subscriptionID
	return nil
}

func (f *fakeStore) CancelSubscription(_ context.Context, userID uuid.UUID) error {
	profile, ok := f.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	now := time.Now()
	profile.Status = model.SubscriptionCanceled
	profile.CanceledAt = &now
	return nil
}

func (f *fakeStore) RefundSubscription(_ context.Context, userID uuid.UUID) error {
	profile, ok := f.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	now := time.Now()
	profile.IsPro = false
	profile.Status = model.SubscriptionRefunded
	profile.CanceledAt = &now
	return nil
}

func (f *fakeStore) CreateReferral(_ context.Context, referral *model.Referral) error {
	for _, existing := range f.referrals {
		if existing.RefereeID == referral.RefereeID {
			return repository.ErrReferralExists
		}
	}
	referral.CreatedAt = time.Now()
	f.referrals = append(f.referrals, *referral)
	return nil
}

func (f *fakeStore) GetReferralByReferee(_ context.Context, refereeID uuid.UUID) (*model.Referral, error) {
	for i := range f.referrals {
		if f.referrals[i].RefereeID == refereeID {
			return &f.referrals[i], nil
		}
	}
	return nil, repository.ErrReferralNotFound
}

func (f *fakeStore) CountReferrals(_ context.Context, referrerID uuid.UUID) (int, error) {
	count := 0
	for _, referral := range f.referrals {
		if referral.ReferrerID == referrerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) ListReferrals(_ context.Context, referrerID uuid.UUID) ([]model.Referral, error) {
	var out []model.Referral
	for _, referral := range f.referrals {
		if referral.ReferrerID == referrerID {
			out = append(out, referral)
		}
	}
	return out, nil
}

func (f *fakeStore) GrantReferralCredits(ctx context.Context, referrerID uuid.UUID, bonus, threshold int) (int, bool, error) {
	count, _ := f.CountReferrals(ctx, referrerID)
	profile, ok := f.profiles[referrerID]
	if !ok || count == 0 || count%threshold != 0 {
		return 0, false, nil
	}
	profile.Credits += bonus
	return profile.Credits, true, nil
}

func (f *fakeStore) CreateTransaction(_ context.Context, tx *model.Transaction) error {
	tx.CreatedAt = time.Now()
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeStore) CreatePendingPayment(_ context.Context, p *model.PendingPayment) error {
	p.CreatedAt = time.Now()
	f.pending = append(f.pending, *p)
	return nil
}

func (f *fakeStore) GetPendingPaymentsByEmail(_ context.Context, email string) ([]model.PendingPayment, error) {
	var out []model.PendingPayment
	for _, p := range f.pending {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) DeletePendingPayment(_ context.Context, id uuid.UUID) error {
	for i, p := range f.pending {
		if p.ID == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) CreateDeadLetter(_ context.Context, d *model.DeadLetter) error {
	d.CreatedAt = time.Now()
	f.deadLetters[d.ID] = d
	return nil
}

func (f *fakeStore) GetDeadLetter(_ context.Context, id uuid.UUID) (*model.DeadLetter, error) {
	dl, ok := f.deadLetters[id]
	if !ok {
		return nil, repository.ErrDeadLetterNotFound
	}
	return dl, nil
}

func (f *fakeStore) ListDeadLetters(_ context.Context, unreplayedOnly bool, _, _ int) ([]model.DeadLetter, error) {
	var out []model.DeadLetter
	for _, dl := range f.deadLetters {
		if unreplayedOnly && dl.ReplayedAt != nil {
			continue
		}
		out = append(out, *dl)
	}
	return out, nil
}

func (f *fakeStore) MarkDeadLetterReplayed(_ context.Context, id uuid.UUID) error {
	dl, ok := f.deadLetters[id]
	if !ok {
		return repository.ErrDeadLetterNotFound
	}
	now := time.Now()
	dl.ReplayedAt = &now
	return nil
}

func (f *fakeStore) CreateNotification(_ context.Context, n *model.Notification) error {
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeStore) ListNotifications(_ context.Context, types []model.NotificationType, since time.Time) ([]model.Notification, error) {
	enabled := make(map[model.NotificationType]bool, len(types))
	for _, t := range types {
		enabled[t] = true
	}
	var out []model.Notification
	for _, n := range f.notifications {
		if enabled[n.Type] && n.CreatedAt.After(since) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) GetNotificationPrefs(_ context.Context, userID uuid.UUID) (*model.NotificationPrefs, error) {
	if prefs, ok := f.prefs[userID]; ok {
		return prefs, nil
	}
	prefs := model.DefaultNotificationPrefs(userID)
	return &prefs, nil
}

func (f *fakeStore) SetNotificationPrefs(_ context.Context, prefs *model.NotificationPrefs) error {
	prefs.UpdatedAt = time.Now()
	f.prefs[prefs.UserID] = prefs
	return nil
}

func (f *fakeStore) SaveContact(_ context.Context, c *model.Contact) error {
	for i := range f.contacts {
		if f.contacts[i].Email == c.Email {
			f.contacts[i].Name = c.Name
			f.contacts[i].Whatsapp = c.Whatsapp
			return nil
		}
	}
	c.CreatedAt = time.Now()
	f.contacts = append(f.contacts, *c)
	return nil
}

func (f *fakeStore) ListContacts(_ context.Context) ([]model.Contact, error) {
	return f.contacts, nil
}

func (f *fakeStore) CountContacts(_ context.Context) (int, error) {
	return len(f.contacts), nil
}

// fakeDedup remembers keys in memory; errs, when set, simulates redis being
// unreachable.
type fakeDedup struct {
	seen map[string]bool
	errs error
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{seen: make(map[string]bool)}
}

func (f *fakeDedup) Once(_ context.Context, key string, _ time.Duration) (bool, error) {
	if f.errs != nil {
		return false, f.errs
	}
	if f.seen[key] {
		return false, nil
	}
	f.seen[key] = true
	return true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			JWTSecret:  "test-secret",
			AppBaseURL: "http://localhost:3000",
		},
		Referral: config.ReferralConfig{
			Threshold:   5,
			BonusAmount: 30,
		},
	}
}
