package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func (r *Repository) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, type, title, body)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query, n.ID, n.Type, n.Title, n.Body).Scan(&n.CreatedAt)
}

// ListNotifications returns broadcasts of the given types newer than since,
// oldest first. An empty type list returns nothing.
func (r *Repository) ListNotifications(ctx context.Context, types []model.NotificationType, since time.Time) ([]model.Notification, error) {
	if len(types) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		"SELECT * FROM notifications WHERE type IN (?) AND created_at > ? ORDER BY created_at ASC", types, since)
	if err != nil {
		return nil, err
	}

	var notifications []model.Notification
	err = r.db.SelectContext(ctx, &notifications, r.db.Rebind(query), args...)
	return notifications, err
}

func (r *Repository) GetNotificationPrefs(ctx context.Context, userID uuid.UUID) (*model.NotificationPrefs, error) {
	var prefs model.NotificationPrefs
	err := r.db.GetContext(ctx, &prefs,
		"SELECT * FROM notification_prefs WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			defaults := model.DefaultNotificationPrefs(userID)
			return &defaults, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *Repository) SetNotificationPrefs(ctx context.Context, prefs *model.NotificationPrefs) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notification_prefs (user_id, dieta, treino, seducao, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			dieta = EXCLUDED.dieta,
			treino = EXCLUDED.treino,
			seducao = EXCLUDED.seducao,
			updated_at = NOW()`,
		prefs.UserID, prefs.Diet, prefs.Workout, prefs.Seduction)
	return err
}
