package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"learnfeed-service/internal/app/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	feedService *service.FeedService
	logger      *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.FeedService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		feedService: svc,
		logger:      logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	// Get catalog size for stats
	count, _ := h.feedService.Count(c.Context())

	return c.Render("pages/dashboard", fiber.Map{
		"Title":      "Learnfeed Dashboard",
		"VideoCount": count,
	}, "layouts/base")
}
