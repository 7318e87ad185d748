package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

type Handler struct {
	cfg             *config.Config
	userSvc         *service.UserService
	referralSvc     *service.ReferralService
	webhookSvc      *service.WebhookService
	pollSvc         *service.PollService
	feedbackSvc     *service.FeedbackService
	notificationSvc *service.NotificationService
	contactSvc      *service.ContactService
	contentSvc      *service.ContentService
	adminSvc        *service.AdminService
}

func New(
	cfg *config.Config,
	userSvc *service.UserService,
	referralSvc *service.ReferralService,
	webhookSvc *service.WebhookService,
	pollSvc *service.PollService,
	feedbackSvc *service.FeedbackService,
	notificationSvc *service.NotificationService,
	contactSvc *service.ContactService,
	contentSvc *service.ContentService,
	adminSvc *service.AdminService,
) *Handler {
	return &Handler{
		cfg:             cfg,
		userSvc:         userSvc,
		referralSvc:     referralSvc,
		webhookSvc:      webhookSvc,
		pollSvc:         pollSvc,
		feedbackSvc:     feedbackSvc,
		notificationSvc: notificationSvc,
		contactSvc:      contactSvc,
		contentSvc:      contentSvc,
		adminSvc:        adminSvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
