package model

import (
	"time"

	"github.com/google/uuid"
)

// Video is one entry of the welcome-content catalog. Free videos are visible
// to everyone; the rest require an active subscription.
type Video struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoURL     string    `json:"video_url" db:"video_url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	IsFree       bool      `json:"is_free" db:"is_free"`
	OrderIndex   int       `json:"order_index" db:"order_index"`
	Likes        int       `json:"likes" db:"likes"`
	Views        int       `json:"views" db:"views"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
