package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jaisonoliveira/metodo-pds-app/internal/middleware"
	"github.com/jaisonoliveira/metodo-pds-app/internal/model"
	"github.com/jaisonoliveira/metodo-pds-app/internal/service"
)

type feedbackRequest struct {
	UserName               string `json:"user_name"`
	SatisfactionRating     int    `json:"satisfaction_rating"`
	WhatLikedMost          string `json:"what_liked_most"`
	EasyNavigation         *bool  `json:"easy_navigation"`
	ImprovementSuggestions string `json:"improvement_suggestions"`
	MostUsedFeatures       string `json:"most_used_features"`
	DesiredFeatures        string `json:"desired_features"`
	SupportRating          int    `json:"support_rating"`
	DoubtsResolved         *bool  `json:"doubts_resolved"`
	OpenFeedback           string `json:"open_feedback"`
}

func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	feedback := &model.Feedback{
		UserID:                 middleware.GetUserID(c),
		UserEmail:              middleware.GetUserEmail(c),
		UserName:               req.UserName,
		SatisfactionRating:     req.SatisfactionRating,
		WhatLikedMost:          req.WhatLikedMost,
		EasyNavigation:         req.EasyNavigation,
		ImprovementSuggestions: req.ImprovementSuggestions,
		MostUsedFeatures:       req.MostUsedFeatures,
		DesiredFeatures:        req.DesiredFeatures,
		SupportRating:          req.SupportRating,
		DoubtsResolved:         req.DoubtsResolved,
		OpenFeedback:           req.OpenFeedback,
	}

	if err := h.feedbackSvc.Submit(c.Context(), feedback); err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "submitted"})
}

func (h *Handler) AdminListFeedback(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	forms, err := h.feedbackSvc.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load feedback"})
	}

	return c.JSON(fiber.Map{"feedback": forms})
}
