package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

// NotificationStore is the slice of the repository the broadcast scheduler
// and preference endpoints need.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, types []model.NotificationType, since time.Time) ([]model.Notification, error)
	GetNotificationPrefs(ctx context.Context, userID uuid.UUID) (*model.NotificationPrefs, error)
	SetNotificationPrefs(ctx context.Context, prefs *model.NotificationPrefs) error
}

// NotificationService runs the three fixed daily engagement broadcasts. One
// timer per schedule, re-armed after each firing; a per-day dedup key keeps
// restarts and multiple instances from double-broadcasting.
type NotificationService struct {
	store NotificationStore
	dedup Deduper
	now   func() time.Time
}

func NewNotificationService(store NotificationStore, dedup Deduper) *NotificationService {
	return &NotificationService{store: store, dedup: dedup, now: time.Now}
}

// NextFireTime returns the next occurrence of the schedule's daily slot. A
// slot already past today lands on tomorrow.
func NextFireTime(schedule model.NotificationSchedule, now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), schedule.Hour, schedule.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is done, firing each daily broadcast at its slot.
func (s *NotificationService) Run(ctx context.Context) {
	log.Println("Notification scheduler started")
	for _, schedule := range model.NotificationSchedules {
		go s.runSchedule(ctx, schedule)
	}
	<-ctx.Done()
}

func (s *NotificationService) runSchedule(ctx context.Context, schedule model.NotificationSchedule) {
	for {
		delay := time.Until(NextFireTime(schedule, s.now()))
		timer := time.NewTimer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.Dispatch(ctx, schedule); err != nil {
				log.Printf("Failed to dispatch %s notification: %v", schedule.Type, err)
			}
		}
	}
}

// Dispatch writes one broadcast row, at most once per schedule per day.
func (s *NotificationService) Dispatch(ctx context.Context, schedule model.NotificationSchedule) error {
	if s.dedup != nil {
		key := "notify:" + string(schedule.Type) + ":" + s.now().Format("2006-01-02")
		first, err := s.dedup.Once(ctx, key, 25*time.Hour)
		if err != nil {
			log.Printf("Notification dedup check failed, dispatching anyway: %v", err)
		} else if !first {
			return nil
		}
	}

	n := &model.Notification{
		ID:    uuid.New(),
		Type:  schedule.Type,
		Title: schedule.Title,
		Body:  schedule.Body,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return err
	}

	log.Printf("Notification dispatched: %s", schedule.Type)
	return nil
}

// ListForUser returns recent broadcasts filtered by the user's preferences.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.Notification, error) {
	prefs, err := s.store.GetNotificationPrefs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListNotifications(ctx, prefs.EnabledTypes(), since)
}

func (s *NotificationService) GetPrefs(ctx context.Context, userID uuid.UUID) (*model.NotificationPrefs, error) {
	return s.store.GetNotificationPrefs(ctx, userID)
}

func (s *NotificationService) SetPrefs(ctx context.Context, prefs *model.NotificationPrefs) error {
	return s.store.SetNotificationPrefs(ctx, prefs)
}
