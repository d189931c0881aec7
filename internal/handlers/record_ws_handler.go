package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/interview-copilot/internal/capture"
	"alfredoptarigan/interview-copilot/internal/models"
	"alfredoptarigan/interview-copilot/internal/services"
)

const stopCommand = "stop"

// RecordHandler streams audio from the browser over a websocket. Binary
// frames are buffered until the client sends the text frame "stop", then
// the buffered clip is transcribed and the result written back as JSON.
type RecordHandler struct {
	interview    services.InterviewService
	maxAudioSize int64
	timeout      time.Duration
}

func NewRecordHandler(interview services.InterviewService, maxAudioSize int64, timeout time.Duration) *RecordHandler {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &RecordHandler{
		interview:    interview,
		maxAudioSize: maxAudioSize,
		timeout:      timeout,
	}
}

// UpgradeCheck rejects plain HTTP requests to the websocket route.
func UpgradeCheck(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleRecord handles GET /ws/record
func (h *RecordHandler) HandleRecord(conn *websocket.Conn) {
	defer conn.Close()

	sessionID := conn.Query("session_id")
	chunks := capture.NewQueue[[]byte]()
	var buffered int64

	logrus.Info("🔌 Recording websocket connected")

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			logrus.Debugf("🔌 Recording websocket closed: %v", err)
			return
		}

		switch msgType {
		case websocket.BinaryMessage:
			buffered += int64(len(msg))
			if buffered > h.maxAudioSize {
				chunks.Drain()
				buffered = 0
				h.writeJSON(conn, fiber.Map{"error": "Audio too large."})
				continue
			}
			chunks.Enqueue(msg)

		case websocket.TextMessage:
			if strings.TrimSpace(string(msg)) != stopCommand {
				continue
			}

			resp, errMsg := h.transcribeChunks(sessionID, chunks.Drain())
			buffered = 0
			if errMsg != "" {
				h.writeJSON(conn, fiber.Map{"error": errMsg})
				continue
			}

			// Later recordings on this connection go to the same session.
			sessionID = resp.SessionID
			h.writeJSON(conn, resp)
		}
	}
}

// transcribeChunks joins the buffered frames into one clip and transcribes it.
// On failure it returns the message to send to the client.
func (h *RecordHandler) transcribeChunks(sessionID string, chunks [][]byte) (*models.TranscribeResponse, string) {
	clip, err := services.NewAudioClip(capture.Concat(chunks))
	if err != nil {
		return nil, err.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	session, err := h.interview.TranscribeClip(ctx, sessionID, clip)
	if err != nil {
		logrus.Errorf("❌ Error in recording websocket: %v", err)
		return nil, transcriptionFailed
	}

	return &models.TranscribeResponse{
		SessionID:  session.ID.String(),
		Transcript: session.Transcript,
		Format:     session.AudioFormat,
	}, ""
}

func (h *RecordHandler) writeJSON(conn *websocket.Conn, v interface{}) {
	if err := conn.WriteJSON(v); err != nil {
		logrus.Warnf("⚠️  Failed to write websocket message: %v", err)
	}
}
