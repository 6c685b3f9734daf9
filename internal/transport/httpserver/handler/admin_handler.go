package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/app/service"
	"learnfeed-service/internal/transport/httpserver/dto"
	"learnfeed-service/internal/validator"
)

// AdminHandler handles admin-related HTTP requests.
type AdminHandler struct {
	syncService *service.SyncService
	validator   *validator.Validator
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(syncSvc *service.SyncService, v *validator.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		syncService: syncSvc,
		validator:   v,
		logger:      logger,
	}
}

// SyncAll handles POST /api/v1/admin/sync
func (h *AdminHandler) SyncAll(c *fiber.Ctx) error {
	h.logger.Info("manual sync triggered")

	results := h.syncService.SyncAll(c.Context())

	return c.JSON(dto.FromSyncResults(results))
}

// SyncSource handles POST /api/v1/admin/sync/:source
func (h *AdminHandler) SyncSource(c *fiber.Ctx) error {
	sourceName := c.Params("source")
	if sourceName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "source name is required",
			Code:  "MISSING_SOURCE",
		})
	}

	h.logger.Info("manual source sync triggered", zap.String("source", sourceName))

	result, err := h.syncService.SyncSource(c.Context(), sourceName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
			Code:  "SYNC_FAILED",
		})
	}

	if result == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "source not found",
			Code:  "SOURCE_NOT_FOUND",
		})
	}

	return c.JSON(dto.SyncResultResponse{
		Source:   result.Source,
		Count:    result.Count,
		Duration: result.Duration.String(),
	})
}

// GetSources handles GET /api/v1/admin/sources
func (h *AdminHandler) GetSources(c *fiber.Ctx) error {
	sources := h.syncService.SourceNames()

	return c.JSON(fiber.Map{
		"sources": sources,
	})
}
