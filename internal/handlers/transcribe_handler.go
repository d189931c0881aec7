package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

const transcriptionFailed = "Transcription failed."

type TranscribeHandler struct {
	interview    services.InterviewService
	maxAudioSize int64
}

func NewTranscribeHandler(interview services.InterviewService, maxAudioSize int64) *TranscribeHandler {
	return &TranscribeHandler{
		interview:    interview,
		maxAudioSize: maxAudioSize,
	}
}

// HandleTranscribe handles POST /transcribe
func (h *TranscribeHandler) HandleTranscribe(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "audio_file is required",
		})
	}

	if fileHeader.Size > h.maxAudioSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Audio file too large. Max size: %d bytes", h.maxAudioSize),
		})
	}

	data, err := readFormFile(fileHeader)
	if err != nil {
		logrus.Errorf("❌ Failed to read uploaded audio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": transcriptionFailed,
		})
	}

	clip, err := services.NewAudioClip(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	session, err := h.interview.TranscribeClip(c.UserContext(), c.FormValue("session_id"), clip)
	if err != nil {
		logrus.Errorf("❌ Error in transcription endpoint: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": transcriptionFailed,
		})
	}

	return c.JSON(models.TranscribeResponse{
		SessionID:  session.ID.String(),
		Transcript: session.Transcript,
		Format:     session.AudioFormat,
	})
}

func readFormFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	return io.ReadAll(src)
}
