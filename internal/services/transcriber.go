package services

import (
	"context"
	"fmt"
)

// Transcriber turns an audio clip into best-effort text.
type Transcriber interface {
	Transcribe(ctx context.Context, clip *AudioClip) (string, error)
}

// NewTranscriber picks the speech-to-text backend by provider name.
func NewTranscriber(provider string, openai OpenAIService, gemini GeminiService) (Transcriber, error) {
	switch provider {
	case "openai", "":
		if openai == nil {
			return nil, fmt.Errorf("openai transcription requires OPENAI_API_KEY")
		}
		return openai, nil
	case "gemini":
		if gemini == nil {
			return nil, fmt.Errorf("gemini transcription requires GEMINI_API_KEY")
		}
		return gemini, nil
	default:
		return nil, fmt.Errorf("unknown transcription provider: %q", provider)
	}
}
