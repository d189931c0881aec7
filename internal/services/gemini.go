package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// maxEmbedBytes keeps embedding input under roughly 10000 tokens.
const maxEmbedBytes = 40000

const transcribeInstruction = "Transcribe the speech in this audio exactly. Output only the transcription."

type GeminiService interface {
	ChatProvider
	Transcriber
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
}

func NewGeminiService(apiKey, transcriptionModel string) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if transcriptionModel == "" || !strings.HasPrefix(transcriptionModel, "gemini") {
		transcriptionModel = "gemini-2.5-flash"
	}

	return &geminiService{
		client:     client,
		modelName:  transcriptionModel,
		embedModel: "text-embedding-004",
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbedBytes)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Complete implements ChatProvider.
func (g *geminiService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	temperature := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.UserMessage), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	return responseText(resp)
}

// Transcribe implements Transcriber. The clip is sent inline with an
// instruction to return only the spoken words.
func (g *geminiService) Transcribe(ctx context.Context, clip *AudioClip) (string, error) {
	if clip == nil || len(clip.Data) == 0 {
		return "", ErrEmptyAudio
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(transcribeInstruction),
			genai.NewPartFromBytes(clip.Data, clip.Format.MIMEType()),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		logrus.Warnf("⚠️ Gemini returned %d candidates without text", len(resp.Candidates))
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}
