package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/repositories"
	"alfredoptarigan/interview-copilot/internal/services"
)

type SessionHandler struct {
	interview services.InterviewService
	catalog   models.ModelsResponse
}

func NewSessionHandler(interview services.InterviewService, catalog models.ModelsResponse) *SessionHandler {
	return &SessionHandler{
		interview: interview,
		catalog:   catalog,
	}
}

// HandleGetSession handles GET /sessions/:id
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	session, err := h.interview.GetSession(c.Params("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return err
	}

	return c.JSON(session)
}

// HandleModels handles GET /models
func (h *SessionHandler) HandleModels(c *fiber.Ctx) error {
	return c.JSON(h.catalog)
}
