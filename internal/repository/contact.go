package repository

import (
	"context"
	"strings"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

// SaveContact upserts a WhatsApp contact keyed by email, so re-registering
// refreshes the stored name and number instead of duplicating the row.
func (r *Repository) SaveContact(ctx context.Context, c *model.Contact) error {
	query := `
		INSERT INTO whatsapp_contacts (id, name, email, whatsapp)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET
			name = EXCLUDED.name,
			whatsapp = EXCLUDED.whatsapp
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		c.ID,
		c.Name,
		strings.ToLower(c.Email),
		c.Whatsapp,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *Repository) ListContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.SelectContext(ctx, &contacts,
		"SELECT * FROM whatsapp_contacts ORDER BY created_at ASC")
	return contacts, err
}

func (r *Repository) CountContacts(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM whatsapp_contacts")
	return count, err
}
