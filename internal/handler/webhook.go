package handler

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// KiwifyWebhook receives payment-lifecycle events. It always acknowledges
// with 200 so the provider never retries an event whose failure is not
// transient; failures are dead-lettered for replay instead.
func (h *Handler) KiwifyWebhook(c *fiber.Ctx) error {
	raw := make([]byte, len(c.Body()))
	copy(raw, c.Body())

	if err := h.webhookSvc.Process(c.Context(), raw); err != nil {
		log.Printf("Webhook processing failed: %v", err)
		return c.JSON(fiber.Map{
			"success": false,
			"error":   "failed to process webhook",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "webhook processed",
	})
}

// KiwifyWebhookStatus lets the provider (and operators) check the endpoint.
func (h *Handler) KiwifyWebhookStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"message":   "Kiwify webhook endpoint is up",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
