package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

var (
	ErrPollInput     = errors.New("title, question and all options are required")
	ErrTooFewOptions = errors.New("a poll needs at least two options")
	ErrUnknownOption = errors.New("option does not belong to this poll")
	ErrPollNotActive = errors.New("poll is not active")
)

type PollStore interface {
	CreatePoll(ctx context.Context, poll *model.Poll) error
	GetPoll(ctx context.Context, id uuid.UUID) (*model.Poll, error)
	ListPolls(ctx context.Context, activeOnly bool) ([]model.Poll, error)
	SetPollActive(ctx context.Context, id uuid.UUID, active bool) error
	DeletePoll(ctx context.Context, id uuid.UUID) error
	RecordVote(ctx context.Context, vote *model.PollVote) error
	GetVotedPollIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type PollService struct {
	store PollStore
}

func NewPollService(store PollStore) *PollService {
	return &PollService{store: store}
}

// CreatePoll builds the options payload with zeroed counters. New polls start
// inactive until an admin publishes them.
func (s *PollService) CreatePoll(ctx context.Context, title, description, question string, options []string, createdBy string) (*model.Poll, error) {
	title = strings.TrimSpace(title)
	question = strings.TrimSpace(question)
	if title == "" || question == "" {
		return nil, ErrPollInput
	}
	if len(options) < 2 {
		return nil, ErrTooFewOptions
	}

	pollOptions := make(model.PollOptions, 0, len(options))
	for i, text := range options {
		if strings.TrimSpace(text) == "" {
			return nil, ErrPollInput
		}
		pollOptions = append(pollOptions, model.PollOption{
			ID:   fmt.Sprintf("option_%d", i+1),
			Text: text,
		})
	}

	var desc *string
	if description != "" {
		desc = &description
	}

	poll := &model.Poll{
		ID:          uuid.New(),
		Title:       title,
		Description: desc,
		Question:    question,
		Options:     pollOptions,
		IsActive:    false,
		CreatedBy:   createdBy,
	}
	if err := s.store.CreatePoll(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func (s *PollService) ListActivePolls(ctx context.Context) ([]model.Poll, error) {
	return s.store.ListPolls(ctx, true)
}

func (s *PollService) ListAllPolls(ctx context.Context) ([]model.Poll, error) {
	return s.store.ListPolls(ctx, false)
}

func (s *PollService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.store.SetPollActive(ctx, id, active)
}

func (s *PollService) DeletePoll(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePoll(ctx, id)
}

// Vote records one vote per user per poll and bumps the option counter.
func (s *PollService) Vote(ctx context.Context, pollID, userID uuid.UUID, userEmail, optionID string) error {
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if !poll.IsActive {
		return ErrPollNotActive
	}

	valid := false
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return ErrUnknownOption
	}

	return s.store.RecordVote(ctx, &model.PollVote{
		ID:        uuid.New(),
		PollID:    pollID,
		UserID:    userID,
		UserEmail: userEmail,
		OptionID:  optionID,
	})
}

func (s *PollService) VotedPollIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.store.GetVotedPollIDs(ctx, userID)
}
