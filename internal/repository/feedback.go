package repository

import (
	"context"
	"strings"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func (r *Repository) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	query := `
		INSERT INTO feedback_forms (id, user_id, user_email, user_name, satisfaction_rating,
			what_liked_most, easy_navigation, improvement_suggestions, most_used_features,
			desired_features, support_rating, doubts_resolved, open_feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		f.ID,
		f.UserID,
		strings.ToLower(f.UserEmail),
		f.UserName,
		f.SatisfactionRating,
		f.WhatLikedMost,
		f.EasyNavigation,
		f.ImprovementSuggestions,
		f.MostUsedFeatures,
		f.DesiredFeatures,
		f.SupportRating,
		f.DoubtsResolved,
		f.OpenFeedback,
	).Scan(&f.CreatedAt)
}

func (r *Repository) ListFeedback(ctx context.Context, limit, offset int) ([]model.Feedback, error) {
	var forms []model.Feedback
	err := r.db.SelectContext(ctx, &forms,
		"SELECT * FROM feedback_forms ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	return forms, err
}
