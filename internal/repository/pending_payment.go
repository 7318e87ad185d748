package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func (r *Repository) CreatePendingPayment(ctx context.Context, p *model.PendingPayment) error {
	query := `
		INSERT INTO pending_payments (id, email, order_id, amount, product_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		p.ID,
		strings.ToLower(p.Email),
		p.OrderID,
		p.Amount,
		p.ProductName,
	).Scan(&p.CreatedAt)
}

func (r *Repository) GetPendingPaymentsByEmail(ctx context.Context, email string) ([]model.PendingPayment, error) {
	var payments []model.PendingPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM pending_payments WHERE email = $1 ORDER BY created_at ASC", strings.ToLower(email))
	return payments, err
}

func (r *Repository) DeletePendingPayment(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM pending_payments WHERE id = $1", id)
	return err
}

func (r *Repository) ListPendingPayments(ctx context.Context, limit, offset int) ([]model.PendingPayment, error) {
	var payments []model.PendingPayment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM pending_payments ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	return payments, err
}

func (r *Repository) CountPendingPayments(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM pending_payments")
	return count, err
}
