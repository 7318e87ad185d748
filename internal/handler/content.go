package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/repository"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

// ListVideos returns the catalog; non-pro members only see free entries.
func (h *Handler) ListVideos(c *fiber.Ctx) error {
	isPro := false
	profile, err := h.userSvc.GetProfile(c.Context(), middleware.GetUserID(c))
	if err == nil {
		isPro = profile.IsPro
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	videos, err := h.contentSvc.ListVideos(c.Context(), isPro)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load videos"})
	}

	return c.JSON(fiber.Map{"videos": videos})
}

func (h *Handler) RegisterVideoView(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("video_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	if err := h.contentSvc.RegisterView(c.Context(), videoID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to register view"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) LikeVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("video_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	if err := h.contentSvc.Like(c.Context(), videoID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to like video"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Admin content management.

type videoRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsFree       bool    `json:"is_free"`
	OrderIndex   int     `json:"order_index"`
}

func (h *Handler) AdminCreateVideo(c *fiber.Ctx) error {
	var req videoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	video := &model.Video{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		IsFree:       req.IsFree,
		OrderIndex:   req.OrderIndex,
	}
	if err := h.contentSvc.CreateVideo(c.Context(), video); err != nil {
		if errors.Is(err, service.ErrVideoInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create video"})
	}

	return c.Status(fiber.StatusCreated).JSON(video)
}

func (h *Handler) AdminUpdateVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("video_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	var req videoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	video := &model.Video{
		ID:           videoID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		IsFree:       req.IsFree,
		OrderIndex:   req.OrderIndex,
	}
	if err := h.contentSvc.UpdateVideo(c.Context(), video); err != nil {
		switch {
		case errors.Is(err, service.ErrVideoInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrVideoNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update video"})
		}
	}

	return c.JSON(fiber.Map{"status": "updated"})
}

func (h *Handler) AdminDeleteVideo(c *fiber.Ctx) error {
	videoID, err := uuid.Parse(c.Params("video_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	if err := h.contentSvc.DeleteVideo(c.Context(), videoID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete video"})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
