package services

import (
	"strings"
)

const (
	sysPrefix = "You are interviewing for a "
	sysSuffix = " position.\nYou will receive an audio transcription of the question. It may not be complete. " +
		"You need to understand the question and write an answer to it.\n"

	ShortInstruction = "Concisely respond, limiting your answer to 50 words."
	LongInstruction  = "Before answering, take a deep breath and think one step at a time. " +
		"Believe the answer in no more than 150 words."
)

// PromptContext is the candidate context the system prompt is built from.
type PromptContext struct {
	Position   string
	JobPosting string
	Resume     string
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildSystemPrompt renders the system prompt for one answer length.
// Empty job posting or resume leaves its block out entirely.
func (pb *PromptBuilder) BuildSystemPrompt(pc PromptContext, short bool) string {
	var sb strings.Builder
	sb.WriteString(sysPrefix)
	sb.WriteString(pc.Position)
	sb.WriteString(sysSuffix)

	if pc.JobPosting != "" {
		sb.WriteString("\n\nJob Posting:\n")
		sb.WriteString(pc.JobPosting)
		sb.WriteString("\n\n")
	}

	if pc.Resume != "" {
		sb.WriteString("\n\nResume:\n")
		sb.WriteString(pc.Resume)
		sb.WriteString("\n\n")
	}

	if short {
		sb.WriteString(ShortInstruction)
	} else {
		sb.WriteString(LongInstruction)
	}

	return sb.String()
}
