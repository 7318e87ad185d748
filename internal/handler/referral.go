package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
)

func (h *Handler) GetReferralStats(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	stats, err := h.referralSvc.GetStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referral stats",
		})
	}

	return c.JSON(stats)
}

func (h *Handler) GetReferralLink(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	return c.JSON(fiber.Map{
		"link": h.referralSvc.ReferralLink(userID),
	})
}

func (h *Handler) ListReferrals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	referrals, err := h.referralSvc.ListReferrals(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referrals",
		})
	}

	return c.JSON(fiber.Map{
		"referrals": referrals,
	})
}
