package repository

import (
	"context"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func (r *Repository) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, order_id, event_type, amount, customer_email, product_name, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.OrderID,
		tx.EventType,
		tx.Amount,
		tx.CustomerEmail,
		tx.ProductName,
		tx.Status,
	).Scan(&tx.CreatedAt)
}

func (r *Repository) ListTransactions(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.SelectContext(ctx, &txs,
		"SELECT * FROM transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	return txs, err
}

func (r *Repository) SumTransactionAmounts(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, "SELECT COALESCE(SUM(amount), 0) FROM transactions")
	return total, err
}
