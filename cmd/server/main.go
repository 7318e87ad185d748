package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jaisonoliveira/metodo-pds-app/internal/cache"
	"github.com/jaisonoliveira/metodo-pds-app/internal/config"
	"github.com/jaisonoliveira/metodo-pds-app/internal/handler"
	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Connect to redis (dedup keys for webhooks and notifications)
	dedup, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer dedup.Close()

	// Create services
	referralSvc := service.NewReferralService(repo, cfg)
	userSvc := service.NewUserService(repo, referralSvc, cfg)
	webhookSvc := service.NewWebhookService(repo, dedup)
	pollSvc := service.NewPollService(repo)
	feedbackSvc := service.NewFeedbackService(repo)
	notificationSvc := service.NewNotificationService(repo, dedup)
	contactSvc := service.NewContactService(repo)
	contentSvc := service.NewContentService(repo)
	adminSvc := service.NewAdminService(repo, cfg)

	if err := adminSvc.EnsurePassword(context.Background(), cfg.Admin.InitialPassword); err != nil {
		log.Fatalf("Failed to seed admin password: %v", err)
	}

	// Create handlers
	h := handler.New(cfg, userSvc, referralSvc, webhookSvc, pollSvc, feedbackSvc,
		notificationSvc, contactSvc, contentSvc, adminSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Payment provider webhooks (no auth; provider does not authenticate)
	app.Post("/webhook/kiwify", h.KiwifyWebhook)
	app.Get("/webhook/kiwify", h.KiwifyWebhookStatus)

	// Public auth
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/admin/login", h.AdminLogin)

	// Authenticated API
	api := app.Group("/api", middleware.Auth(cfg))

	api.Get("/user/me", h.GetMe)

	// Referrals
	api.Get("/referral/stats", h.GetReferralStats)
	api.Get("/referral/link", h.GetReferralLink)
	api.Get("/referral/list", h.ListReferrals)

	// Polls
	api.Get("/polls", h.GetActivePolls)
	api.Post("/polls/:poll_id/vote", h.VotePoll)

	// Feedback
	api.Post("/feedback", h.SubmitFeedback)

	// Notifications
	api.Get("/notifications", h.ListNotifications)
	api.Get("/notifications/prefs", h.GetNotificationPrefs)
	api.Put("/notifications/prefs", h.SetNotificationPrefs)

	// Content
	api.Get("/videos", h.ListVideos)
	api.Post("/videos/:video_id/view", h.RegisterVideoView)
	api.Post("/videos/:video_id/like", h.LikeVideo)

	// Admin panel routes (admin token required)
	admin := app.Group("/api/admin", middleware.Auth(cfg), middleware.AdminOnly())
	admin.Get("/stats", h.AdminStats)
	admin.Get("/referral-settings", h.AdminReferralSettings)
	admin.Post("/password", h.AdminChangePassword)

	admin.Get("/transactions", h.AdminListTransactions)
	admin.Get("/pending-payments", h.AdminListPendingPayments)
	admin.Get("/dead-letters", h.AdminListDeadLetters)
	admin.Post("/dead-letters/:dead_letter_id/replay", h.AdminReplayDeadLetter)

	admin.Get("/polls", h.AdminListPolls)
	admin.Post("/polls", h.AdminCreatePoll)
	admin.Put("/polls/:poll_id/active", h.AdminSetPollActive)
	admin.Delete("/polls/:poll_id", h.AdminDeletePoll)

	admin.Get("/feedback", h.AdminListFeedback)

	admin.Get("/contacts", h.AdminListContacts)
	admin.Get("/contacts/export", h.AdminExportContacts)

	admin.Post("/videos", h.AdminCreateVideo)
	admin.Put("/videos/:video_id", h.AdminUpdateVideo)
	admin.Delete("/videos/:video_id", h.AdminDeleteVideo)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go notificationSvc.Run(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
