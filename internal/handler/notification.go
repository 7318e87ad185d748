package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
)

func (h *Handler) ListNotifications(c *fiber.Ctx) error {
	hours, _ := strconv.Atoi(c.Query("hours", "24"))
	if hours <= 0 || hours > 24*7 {
		hours = 24
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	notifications, err := h.notificationSvc.ListForUser(c.Context(), middleware.GetUserID(c), since)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load notifications"})
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *Handler) GetNotificationPrefs(c *fiber.Ctx) error {
	prefs, err := h.notificationSvc.GetPrefs(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load preferences"})
	}

	return c.JSON(prefs)
}

type notificationPrefsRequest struct {
	Diet      bool `json:"dieta"`
	Workout   bool `json:"treino"`
	Seduction bool `json:"seducao"`
}

func (h *Handler) SetNotificationPrefs(c *fiber.Ctx) error {
	var req notificationPrefsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	prefs := &model.NotificationPrefs{
		UserID:    middleware.GetUserID(c),
		Diet:      req.Diet,
		Workout:   req.Workout,
		Seduction: req.Seduction,
	}
	if err := h.notificationSvc.SetPrefs(c.Context(), prefs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save preferences"})
	}

	return c.JSON(fiber.Map{"status": "saved"})
}
