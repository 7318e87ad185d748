package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var (
	ErrPollNotFound = errors.New("poll not found")
	ErrAlreadyVoted = errors.New("user already voted on this poll")
)

func (r *Repository) CreatePoll(ctx context.Context, poll *model.Poll) error {
	query := `
		INSERT INTO polls (id, title, description, question, options, is_active, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		poll.ID,
		poll.Title,
		poll.Description,
		poll.Question,
		poll.Options,
		poll.IsActive,
		poll.CreatedBy,
	).Scan(&poll.CreatedAt, &poll.UpdatedAt)
}

func (r *Repository) GetPoll(ctx context.Context, id uuid.UUID) (*model.Poll, error) {
	var poll model.Poll
	err := r.db.GetContext(ctx, &poll, "SELECT * FROM polls WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}
	return &poll, nil
}

func (r *Repository) ListPolls(ctx context.Context, activeOnly bool) ([]model.Poll, error) {
	var polls []model.Poll
	query := "SELECT * FROM polls"
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY created_at DESC"
	err := r.db.SelectContext(ctx, &polls, query)
	return polls, err
}

func (r *Repository) SetPollActive(ctx context.Context, id uuid.UUID, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE polls SET is_active = $2, updated_at = NOW() WHERE id = $1", id, active)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPollNotFound
	}
	return nil
}

func (r *Repository) DeletePoll(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM polls WHERE id = $1", id)
	return err
}

// RecordVote inserts the vote and bumps the option counter inside the poll's
// JSONB options in one transaction. The unique index on (poll_id, user_id)
// keeps votes to one per user per poll.
func (r *Repository) RecordVote(ctx context.Context, vote *model.PollVote) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO poll_votes (id, poll_id, user_id, user_email, option_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		vote.ID, vote.PollID, vote.UserID, strings.ToLower(vote.UserEmail), vote.OptionID,
	).Scan(&vote.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "poll_votes_poll_id_user_id_key") {
			return ErrAlreadyVoted
		}
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE polls SET options = (
			SELECT jsonb_agg(
				CASE WHEN opt->>'id' = $2
					THEN jsonb_set(opt, '{votes}', to_jsonb((opt->>'votes')::int + 1))
					ELSE opt
				END)
			FROM jsonb_array_elements(options) AS opt
		), updated_at = NOW()
		WHERE id = $1`,
		vote.PollID, vote.OptionID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetVotedPollIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT poll_id FROM poll_votes WHERE user_id = $1", userID)
	return ids, err
}
