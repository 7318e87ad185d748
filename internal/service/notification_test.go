package service

import (
	"context"
	"testing"
	"time"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func TestNextFireTime(t *testing.T) {
	schedule := model.NotificationSchedule{Type: model.NotificationDiet, Hour: 8, Minute: 0}

	t.Run("slot still ahead today", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 6, 30, 0, 0, time.UTC)
		next := NextFireTime(schedule, now)
		want := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("next = %v, want %v", next, want)
		}
	})

	t.Run("slot already past rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		next := NextFireTime(schedule, now)
		want := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("next = %v, want %v", next, want)
		}
	})

	t.Run("exactly at slot rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
		next := NextFireTime(schedule, now)
		want := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
		if !next.Equal(want) {
			t.Errorf("next = %v, want %v", next, want)
		}
	})
}

func TestDispatchOncePerDay(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNotificationService(store, newFakeDedup())

	schedule := model.NotificationSchedules[0]
	if err := svc.Dispatch(ctx, schedule); err != nil {
		t.Fatalf("first Dispatch: %v", err)
	}
	if err := svc.Dispatch(ctx, schedule); err != nil {
		t.Fatalf("second Dispatch: %v", err)
	}

	if len(store.notifications) != 1 {
		t.Fatalf("notifications = %d, want 1", len(store.notifications))
	}
	n := store.notifications[0]
	if n.Type != schedule.Type || n.Title != schedule.Title || n.Body != schedule.Body {
		t.Errorf("notification = %+v, want schedule content", n)
	}
}

func TestDispatchNextDayFiresAgain(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNotificationService(store, newFakeDedup())

	day := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	schedule := model.NotificationSchedules[0]
	if err := svc.Dispatch(ctx, schedule); err != nil {
		t.Fatalf("Dispatch day one: %v", err)
	}

	day = day.AddDate(0, 0, 1)
	if err := svc.Dispatch(ctx, schedule); err != nil {
		t.Fatalf("Dispatch day two: %v", err)
	}

	if len(store.notifications) != 2 {
		t.Errorf("notifications = %d, want 2 across two days", len(store.notifications))
	}
}

func TestListForUserFiltersByPrefs(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNotificationService(store, nil)
	user := store.addUser("leitor@example.com")

	for _, schedule := range model.NotificationSchedules {
		if err := svc.Dispatch(ctx, schedule); err != nil {
			t.Fatalf("Dispatch %s: %v", schedule.Type, err)
		}
	}

	since := time.Now().Add(-time.Hour)

	all, err := svc.ListForUser(ctx, user.ID, since)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(all) != len(model.NotificationSchedules) {
		t.Errorf("default prefs returned %d notifications, want %d", len(all), len(model.NotificationSchedules))
	}

	if err := svc.SetPrefs(ctx, &model.NotificationPrefs{
		UserID:    user.ID,
		Diet:      true,
		Workout:   false,
		Seduction: false,
	}); err != nil {
		t.Fatalf("SetPrefs: %v", err)
	}

	filtered, err := svc.ListForUser(ctx, user.ID, since)
	if err != nil {
		t.Fatalf("ListForUser after prefs: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("filtered notifications = %d, want 1", len(filtered))
	}
	if filtered[0].Type != model.NotificationDiet {
		t.Errorf("type = %s, want %s", filtered[0].Type, model.NotificationDiet)
	}
}

func TestScheduleCatalog(t *testing.T) {
	if len(model.NotificationSchedules) != 3 {
		t.Fatalf("schedules = %d, want 3", len(model.NotificationSchedules))
	}
	seen := make(map[model.NotificationType]bool)
	for _, s := range model.NotificationSchedules {
		if seen[s.Type] {
			t.Errorf("duplicate schedule type %s", s.Type)
		}
		seen[s.Type] = true
		if s.Title == "" || s.Body == "" {
			t.Errorf("schedule %s has empty content", s.Type)
		}
	}
}
