package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one submitted satisfaction form. Rows are append-only.
type Feedback struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	UserID                 uuid.UUID `json:"user_id" db:"user_id"`
	UserEmail              string    `json:"user_email" db:"user_email"`
	UserName               string    `json:"user_name" db:"user_name"`
	SatisfactionRating     int       `json:"satisfaction_rating" db:"satisfaction_rating"`
	WhatLikedMost          string    `json:"what_liked_most" db:"what_liked_most"`
	EasyNavigation         *bool     `json:"easy_navigation,omitempty" db:"easy_navigation"`
	ImprovementSuggestions string    `json:"improvement_suggestions" db:"improvement_suggestions"`
	MostUsedFeatures       string    `json:"most_used_features" db:"most_used_features"`
	DesiredFeatures        string    `json:"desired_features" db:"desired_features"`
	SupportRating          int       `json:"support_rating" db:"support_rating"`
	DoubtsResolved         *bool     `json:"doubts_resolved,omitempty" db:"doubts_resolved"`
	OpenFeedback           string    `json:"open_feedback" db:"open_feedback"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
}
