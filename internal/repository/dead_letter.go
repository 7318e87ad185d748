package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var ErrDeadLetterNotFound = errors.New("dead letter not found")

func (r *Repository) CreateDeadLetter(ctx context.Context, d *model.DeadLetter) error {
	query := `
		INSERT INTO webhook_dead_letters (id, event_type, order_id, payload, error)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		d.ID,
		d.EventType,
		d.OrderID,
		d.Payload,
		d.Error,
	).Scan(&d.CreatedAt)
}

func (r *Repository) GetDeadLetter(ctx context.Context, id uuid.UUID) (*model.DeadLetter, error) {
	var dl model.DeadLetter
	err := r.db.GetContext(ctx, &dl, "SELECT * FROM webhook_dead_letters WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeadLetterNotFound
		}
		return nil, err
	}
	return &dl, nil
}

func (r *Repository) ListDeadLetters(ctx context.Context, unreplayedOnly bool, limit, offset int) ([]model.DeadLetter, error) {
	var letters []model.DeadLetter
	query := "SELECT * FROM webhook_dead_letters"
	if unreplayedOnly {
		query += " WHERE replayed_at IS NULL"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	err := r.db.SelectContext(ctx, &letters, query, limit, offset)
	return letters, err
}

func (r *Repository) MarkDeadLetterReplayed(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE webhook_dead_letters SET replayed_at = NOW() WHERE id = $1", id)
	return err
}
