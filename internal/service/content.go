package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var ErrVideoInput = errors.New("title and video_url are required")

type ContentStore interface {
	CreateVideo(ctx context.Context, v *model.Video) error
	GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error)
	ListVideos(ctx context.Context, freeOnly bool) ([]model.Video, error)
	UpdateVideo(ctx context.Context, v *model.Video) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
	IncrementVideoViews(ctx context.Context, id uuid.UUID) error
	IncrementVideoLikes(ctx context.Context, id uuid.UUID) error
}

type ContentService struct {
	store ContentStore
}

func NewContentService(store ContentStore) *ContentService {
	return &ContentService{store: store}
}

func (s *ContentService) CreateVideo(ctx context.Context, v *model.Video) error {
	if v.Title == "" || v.VideoURL == "" {
		return ErrVideoInput
	}
	v.ID = uuid.New()
	return s.store.CreateVideo(ctx, v)
}

// ListVideos returns the full catalog for pro members and only the free
// entries for everyone else.
func (s *ContentService) ListVideos(ctx context.Context, isPro bool) ([]model.Video, error) {
	return s.store.ListVideos(ctx, !isPro)
}

func (s *ContentService) GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	return s.store.GetVideo(ctx, id)
}

func (s *ContentService) UpdateVideo(ctx context.Context, v *model.Video) error {
	if v.Title == "" || v.VideoURL == "" {
		return ErrVideoInput
	}
	return s.store.UpdateVideo(ctx, v)
}

func (s *ContentService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteVideo(ctx, id)
}

func (s *ContentService) RegisterView(ctx context.Context, id uuid.UUID) error {
	return s.store.IncrementVideoViews(ctx, id)
}

func (s *ContentService) Like(ctx context.Context, id uuid.UUID) error {
	return s.store.IncrementVideoLikes(ctx, id)
}
