package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

type ResumeHandler struct {
	pdfParser   services.PDFParserService
	maxFileSize int64
}

func NewResumeHandler(pdfParser services.PDFParserService, maxFileSize int64) *ResumeHandler {
	return &ResumeHandler{
		pdfParser:   pdfParser,
		maxFileSize: maxFileSize,
	}
}

// HandleResume handles POST /resume
func (h *ResumeHandler) HandleResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume is required",
		})
	}

	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid file extension: %s", ext),
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded resume: %w", err)
	}
	defer src.Close()

	content, err := h.pdfParser.ExtractFromReader(src, fileHeader.Size)
	if err != nil {
		logrus.Warnf("⚠️  Failed to parse resume %s: %v", fileHeader.Filename, err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Could not extract text from resume",
		})
	}

	return c.JSON(models.ResumeResponse{
		Text:      content.Text,
		PageCount: content.PageCount,
	})
}
