package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type PollOption struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// PollOptions is stored as a JSONB column.
type PollOptions []PollOption

func (o PollOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *PollOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return errors.New("unsupported type for poll options")
	}
}

type Poll struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description *string     `json:"description,omitempty" db:"description"`
	Question    string      `json:"question" db:"question"`
	Options     PollOptions `json:"options" db:"options"`
	IsActive    bool        `json:"is_active" db:"is_active"`
	CreatedBy   string      `json:"created_by" db:"created_by"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += opt.Votes
	}
	return total
}

type PollVote struct {
	ID        uuid.UUID `json:"id" db:"id"`
	PollID    uuid.UUID `json:"poll_id" db:"poll_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserEmail string    `json:"user_email" db:"user_email"`
	OptionID  string    `json:"option_id" db:"option_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
