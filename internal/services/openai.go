package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAIService interface {
	ChatProvider
	Transcriber
}

type openAIService struct {
	client             *openai.Client
	storage            StorageService
	transcriptionModel string
}

func NewOpenAIService(apiKey, baseURL, transcriptionModel string, storage StorageService) OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	if transcriptionModel == "" {
		transcriptionModel = openai.Whisper1
	}

	return &openAIService{
		client:             openai.NewClientWithConfig(config),
		storage:            storage,
		transcriptionModel: transcriptionModel,
	}
}

// Complete implements ChatProvider.
func (o *openAIService) Complete(ctx context.Context, req ChatRequest) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserMessage},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat completion response")
	}

	return resp.Choices[0].Message.Content, nil
}

// Transcribe implements Transcriber. The audio endpoint takes a named file,
// so the clip goes through a temp file that is removed afterwards.
func (o *openAIService) Transcribe(ctx context.Context, clip *AudioClip) (string, error) {
	var text string
	err := o.storage.WithTempClip(clip, func(path string) error {
		resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    o.transcriptionModel,
			FilePath: path,
		})
		if err != nil {
			return fmt.Errorf("failed to transcribe audio: %w", err)
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})
	if err != nil {
		return "", err
	}

	return text, nil
}
