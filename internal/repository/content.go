package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var ErrVideoNotFound = errors.New("video not found")

func (r *Repository) CreateVideo(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO welcome_videos (id, title, description, video_url, thumbnail_url, is_free, order_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		v.ID,
		v.Title,
		v.Description,
		v.VideoURL,
		v.ThumbnailURL,
		v.IsFree,
		v.OrderIndex,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
}

func (r *Repository) GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	var video model.Video
	err := r.db.GetContext(ctx, &video, "SELECT * FROM welcome_videos WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *Repository) ListVideos(ctx context.Context, freeOnly bool) ([]model.Video, error) {
	var videos []model.Video
	query := "SELECT * FROM welcome_videos"
	if freeOnly {
		query += " WHERE is_free"
	}
	query += " ORDER BY order_index ASC"
	err := r.db.SelectContext(ctx, &videos, query)
	return videos, err
}

func (r *Repository) UpdateVideo(ctx context.Context, v *model.Video) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE welcome_videos SET
			title = $2,
			description = $3,
			video_url = $4,
			thumbnail_url = $5,
			is_free = $6,
			order_index = $7,
			updated_at = NOW()
		WHERE id = $1`,
		v.ID, v.Title, v.Description, v.VideoURL, v.ThumbnailURL, v.IsFree, v.OrderIndex)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *Repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM welcome_videos WHERE id = $1", id)
	return err
}

func (r *Repository) IncrementVideoViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE welcome_videos SET views = views + 1 WHERE id = $1", id)
	return err
}

func (r *Repository) IncrementVideoLikes(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE welcome_videos SET likes = likes + 1 WHERE id = $1", id)
	return err
}
