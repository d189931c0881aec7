package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const answerTemperature float32 = 0.7

// AnswerRequest is everything one generation needs besides the length flag.
type AnswerRequest struct {
	Transcript string
	Model      string
	PromptContext
}

type Answers struct {
	Short string
	Long  string
}

type AnswerService interface {
	GenerateAnswer(ctx context.Context, req AnswerRequest, short bool) (string, error)
	GenerateAnswers(ctx context.Context, req AnswerRequest) (*Answers, error)
}

type answerService struct {
	chat          ChatProvider
	promptBuilder *PromptBuilder
}

func NewAnswerService(chat ChatProvider) AnswerService {
	return &answerService{
		chat:          chat,
		promptBuilder: NewPromptBuilder(),
	}
}

// GenerateAnswer implements AnswerService.
func (a *answerService) GenerateAnswer(ctx context.Context, req AnswerRequest, short bool) (string, error) {
	prompt := a.promptBuilder.BuildSystemPrompt(req.PromptContext, short)

	kind := "long"
	if short {
		kind = "short"
	}
	logrus.Debugf("📝 %s answer prompt length: %d characters", kind, len(prompt))

	answer, err := a.chat.Complete(ctx, ChatRequest{
		Model:        req.Model,
		SystemPrompt: prompt,
		UserMessage:  req.Transcript,
		Temperature:  answerTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate %s answer: %w", kind, err)
	}

	return answer, nil
}

// GenerateAnswers runs the short and long generations in parallel. They
// share nothing, so either failing fails the pair.
func (a *answerService) GenerateAnswers(ctx context.Context, req AnswerRequest) (*Answers, error) {
	var answers Answers

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		short, err := a.GenerateAnswer(gctx, req, true)
		if err != nil {
			return err
		}
		answers.Short = short
		return nil
	})
	g.Go(func() error {
		long, err := a.GenerateAnswer(gctx, req, false)
		if err != nil {
			return err
		}
		answers.Long = long
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &answers, nil
}
