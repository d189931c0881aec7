package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

type HistoryHandler struct {
	history services.HistoryService
}

// NewHistoryHandler accepts a nil service when history is disabled.
func NewHistoryHandler(history services.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		history: history,
	}
}

// HandleSearch handles GET /history/search?q=&limit=
func (h *HistoryHandler) HandleSearch(c *fiber.Ctx) error {
	if h.history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": services.ErrHistoryDisabled.Error(),
		})
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "q is required",
		})
	}

	results, err := h.history.Search(c.UserContext(), query, c.QueryInt("limit", 5))
	if err != nil {
		logrus.Errorf("❌ History search failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "History search failed.",
		})
	}

	return c.JSON(models.HistorySearchResponse{
		Query:   query,
		Results: results,
	})
}
