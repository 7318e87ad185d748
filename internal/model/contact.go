package model

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a WhatsApp contact captured at registration for remarketing.
// Deduplicated by email: re-registering updates the existing row.
type Contact struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Whatsapp  string    `json:"whatsapp" db:"whatsapp"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
