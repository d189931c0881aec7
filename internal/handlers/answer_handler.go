package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

const generationFailed = "Answer generation failed."

type AnswerHandler struct {
	interview services.InterviewService
}

func NewAnswerHandler(interview services.InterviewService) *AnswerHandler {
	return &AnswerHandler{
		interview: interview,
	}
}

// HandleGenerateAnswer handles POST /generate_answer
func (h *AnswerHandler) HandleGenerateAnswer(c *fiber.Ctx) error {
	var req models.GenerateAnswerRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	resp, err := h.interview.GenerateAnswers(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrMissingTranscript) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "transcript is required",
			})
		}

		logrus.Errorf("❌ Error in answer generation endpoint: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": generationFailed,
		})
	}

	return c.JSON(resp)
}
