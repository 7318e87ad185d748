package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	token, err := h.adminSvc.Login(c.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdminPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAdminNotConfigured):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to log in"})
		}
	}

	return c.JSON(fiber.Map{"token": token})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) AdminChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.adminSvc.ChangePassword(c.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to change password"})
		}
	}

	return c.JSON(fiber.Map{"status": "changed"})
}

func (h *Handler) AdminReferralSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"threshold": h.cfg.Referral.Threshold,
		"bonus":     h.cfg.Referral.BonusAmount,
	})
}

func (h *Handler) AdminStats(c *fiber.Ctx) error {
	stats, err := h.adminSvc.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load stats"})
	}
	return c.JSON(stats)
}

func (h *Handler) AdminListTransactions(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	txs, err := h.adminSvc.ListTransactions(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load transactions"})
	}
	return c.JSON(fiber.Map{"transactions": txs})
}

func (h *Handler) AdminListPendingPayments(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	payments, err := h.adminSvc.ListPendingPayments(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load pending payments"})
	}
	return c.JSON(fiber.Map{"pending_payments": payments})
}

func (h *Handler) AdminListDeadLetters(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	unreplayedOnly := c.Query("unreplayed") == "true"

	letters, err := h.webhookSvc.ListDeadLetters(c.Context(), unreplayedOnly, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load dead letters"})
	}
	return c.JSON(fiber.Map{"dead_letters": letters})
}

func (h *Handler) AdminReplayDeadLetter(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("dead_letter_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid dead letter id"})
	}

	if err := h.webhookSvc.ReplayDeadLetter(c.Context(), id); err != nil {
		if errors.Is(err, repository.ErrDeadLetterNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to replay event"})
	}

	return c.JSON(fiber.Map{"status": "replayed"})
}
