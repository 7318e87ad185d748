package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

func (h *Handler) GetActivePolls(c *fiber.Ctx) error {
	polls, err := h.pollSvc.ListActivePolls(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load polls"})
	}

	voted, err := h.pollSvc.VotedPollIDs(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load votes"})
	}

	return c.JSON(fiber.Map{
		"polls": polls,
		"voted": voted,
	})
}

type voteRequest struct {
	OptionID string `json:"option_id"`
}

func (h *Handler) VotePoll(c *fiber.Ctx) error {
	pollID, err := uuid.Parse(c.Params("poll_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid poll id"})
	}

	var req voteRequest
	if err := c.BodyParser(&req); err != nil || req.OptionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "option_id is required"})
	}

	err = h.pollSvc.Vote(c.Context(), pollID, middleware.GetUserID(c), middleware.GetUserEmail(c), req.OptionID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPollNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrAlreadyVoted), errors.Is(err, service.ErrPollNotActive), errors.Is(err, service.ErrUnknownOption):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record vote"})
		}
	}

	return c.JSON(fiber.Map{"status": "voted"})
}

// Admin poll management.

func (h *Handler) AdminListPolls(c *fiber.Ctx) error {
	polls, err := h.pollSvc.ListAllPolls(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load polls"})
	}
	return c.JSON(fiber.Map{"polls": polls})
}

type createPollRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
}

func (h *Handler) AdminCreatePoll(c *fiber.Ctx) error {
	var req createPollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	poll, err := h.pollSvc.CreatePoll(c.Context(), req.Title, req.Description, req.Question, req.Options, middleware.GetUserEmail(c))
	if err != nil {
		if errors.Is(err, service.ErrPollInput) || errors.Is(err, service.ErrTooFewOptions) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create poll"})
	}

	return c.Status(fiber.StatusCreated).JSON(poll)
}

type setPollActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) AdminSetPollActive(c *fiber.Ctx) error {
	pollID, err := uuid.Parse(c.Params("poll_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid poll id"})
	}

	var req setPollActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.pollSvc.SetActive(c.Context(), pollID, req.Active); err != nil {
		if errors.Is(err, repository.ErrPollNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update poll"})
	}

	return c.JSON(fiber.Map{"status": "updated"})
}

func (h *Handler) AdminDeletePoll(c *fiber.Ctx) error {
	pollID, err := uuid.Parse(c.Params("poll_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid poll id"})
	}

	if err := h.pollSvc.DeletePoll(c.Context(), pollID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete poll"})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
