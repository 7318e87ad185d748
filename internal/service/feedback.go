package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var ErrInvalidRating = errors.New("ratings must be between 0 and 5")

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, f *model.Feedback) error
	ListFeedback(ctx context.Context, limit, offset int) ([]model.Feedback, error)
}

type FeedbackService struct {
	store FeedbackStore
}

func NewFeedbackService(store FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

func (s *FeedbackService) Submit(ctx context.Context, f *model.Feedback) error {
	if f.SatisfactionRating < 0 || f.SatisfactionRating > 5 ||
		f.SupportRating < 0 || f.SupportRating > 5 {
		return ErrInvalidRating
	}
	f.ID = uuid.New()
	return s.store.CreateFeedback(ctx, f)
}

func (s *FeedbackService) List(ctx context.Context, limit, offset int) ([]model.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListFeedback(ctx, limit, offset)
}
