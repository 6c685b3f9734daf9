// Package handler provides HTTP handlers for the API.
package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/app/service"
	"learnfeed-service/internal/transport/httpserver/dto"
	"learnfeed-service/internal/validator"
)

// FeedHandler handles feed and catalog HTTP requests.
type FeedHandler struct {
	service   *service.FeedService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(svc *service.FeedService, v *validator.Validator, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// Feed handles GET /api/v1/feed
func (h *FeedHandler) Feed(c *fiber.Ctx) error {
	var req dto.FeedRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	result, err := h.service.Recommend(c.Context(), req.ToFeedParams())
	if err != nil {
		h.logger.Error("feed generation failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "feed generation failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromFeedResult(result))
}

// NextUp handles GET /api/v1/feed/next
func (h *FeedHandler) NextUp(c *fiber.Ctx) error {
	var req dto.NextUpRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	next, err := h.service.NextUp(c.Context(), req.UserID)
	if err != nil {
		h.logger.Error("next-up pick failed",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "next-up pick failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromNextUp(next))
}

// TrendingForExam handles GET /api/v1/trending/exam
func (h *FeedHandler) TrendingForExam(c *fiber.Ctx) error {
	var req dto.TrendingRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	videos, err := h.service.TrendingForExam(c.Context(), req.Limit)
	if err != nil {
		h.logger.Error("trending lookup failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "trending lookup failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromTrending(videos))
}

// Browse handles GET /api/v1/videos
func (h *FeedHandler) Browse(c *fiber.Ctx) error {
	var req dto.BrowseRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	page, err := h.service.Browse(c.Context(), req.ToBrowseParams())
	if err != nil {
		h.logger.Error("catalog browse failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "catalog browse failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.FromCatalogPage(page))
}

// GetByID handles GET /api/v1/videos/:id
func (h *FeedHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	video, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		h.logger.Error("get by id failed", zap.String("id", id), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "failed to get video",
			Code:  "INTERNAL_ERROR",
		})
	}

	if video == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "video not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(dto.FromDomainVideo(video))
}
