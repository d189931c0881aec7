package services

import (
	"context"
	"fmt"
	"strings"
)

// ChatRequest is a single system+user exchange with a chat model.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	UserMessage  string
	Temperature  float32
}

type ChatProvider interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

type chatRouter struct {
	openai ChatProvider
	gemini ChatProvider
}

// NewChatRouter dispatches gemini-* models to the Gemini provider and
// everything else to OpenAI. Either provider may be nil.
func NewChatRouter(openai, gemini ChatProvider) ChatProvider {
	return &chatRouter{
		openai: openai,
		gemini: gemini,
	}
}

// Complete implements ChatProvider.
func (r *chatRouter) Complete(ctx context.Context, req ChatRequest) (string, error) {
	provider := r.openai
	name := "openai"
	if strings.HasPrefix(req.Model, "gemini") {
		provider = r.gemini
		name = "gemini"
	}

	if provider == nil {
		return "", fmt.Errorf("no %s provider configured for model %q", name, req.Model)
	}

	return provider.Complete(ctx, req)
}
