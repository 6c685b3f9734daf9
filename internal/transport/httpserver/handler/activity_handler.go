package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/app/service"
	"learnfeed-service/internal/transport/httpserver/dto"
	"learnfeed-service/internal/validator"
)

// ActivityHandler handles learner activity HTTP requests. Every write
// feeds the affinity signals the ranker consumes on the next feed call.
type ActivityHandler struct {
	service   *service.ActivityService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, v *validator.Validator, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// parseBody parses and validates a JSON request body, writing the error
// response itself. Returns false when the request was rejected.
func (h *ActivityHandler) parseBody(c *fiber.Ctx, req interface{}) bool {
	if err := c.BodyParser(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})

		return false
	}

	if err := h.validator.Validate(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})

		return false
	}

	return true
}

func (h *ActivityHandler) internalError(c *fiber.Ctx, op string, err error) error {
	h.logger.Error(op+" failed", zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: op + " failed",
		Code:  "INTERNAL_ERROR",
	})
}

// RecordWatch handles POST /api/v1/activity/watch
func (h *ActivityHandler) RecordWatch(c *fiber.Ctx) error {
	var req dto.WatchRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.RecordWatch(c.Context(), req.UserID, req.VideoID, req.WatchedSeconds); err != nil {
		return h.internalError(c, "recording watch", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RecordSearch handles POST /api/v1/activity/search
func (h *ActivityHandler) RecordSearch(c *fiber.Ctx) error {
	var req dto.SearchLogRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.RecordSearch(c.Context(), req.UserID, req.Query); err != nil {
		return h.internalError(c, "recording search", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RequestTopic handles POST /api/v1/activity/topics
func (h *ActivityHandler) RequestTopic(c *fiber.Ctx) error {
	var req dto.TopicRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.RequestTopic(c.Context(), req.UserID, req.Topic); err != nil {
		return h.internalError(c, "recording topic request", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetSyllabus handles PUT /api/v1/activity/syllabus
func (h *ActivityHandler) SetSyllabus(c *fiber.Ctx) error {
	var req dto.SyllabusRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.SetSyllabusTopics(c.Context(), req.UserID, req.Topics); err != nil {
		return h.internalError(c, "setting syllabus", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetExamDate handles PUT /api/v1/activity/exam-date
func (h *ActivityHandler) SetExamDate(c *fiber.Ctx) error {
	var req dto.ExamDateRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.SetExamDate(c.Context(), req.UserID, req.ParsedExamDate()); err != nil {
		return h.internalError(c, "setting exam date", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Like handles POST /api/v1/activity/likes
func (h *ActivityHandler) Like(c *fiber.Ctx) error {
	var req dto.LikeRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.Like(c.Context(), req.UserID, req.VideoID); err != nil {
		return h.internalError(c, "recording like", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unlike handles DELETE /api/v1/activity/likes
func (h *ActivityHandler) Unlike(c *fiber.Ctx) error {
	var req dto.LikeRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.Unlike(c.Context(), req.UserID, req.VideoID); err != nil {
		return h.internalError(c, "removing like", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Follow handles POST /api/v1/activity/follows
func (h *ActivityHandler) Follow(c *fiber.Ctx) error {
	var req dto.FollowRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.Follow(c.Context(), req.UserID, req.CreatorID); err != nil {
		return h.internalError(c, "recording follow", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Unfollow handles DELETE /api/v1/activity/follows
func (h *ActivityHandler) Unfollow(c *fiber.Ctx) error {
	var req dto.FollowRequest
	if !h.parseBody(c, &req) {
		return nil
	}

	if err := h.service.Unfollow(c.Context(), req.UserID, req.CreatorID); err != nil {
		return h.internalError(c, "removing follow", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetActivity handles GET /api/v1/activity/:userId
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "user id is required",
			Code:  "MISSING_USER_ID",
		})
	}

	record, err := h.service.GetActivity(c.Context(), userID)
	if err != nil {
		return h.internalError(c, "loading activity", err)
	}

	return c.JSON(dto.FromActivityRecord(record))
}
