package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type ChatClient interface {
	GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error)
}

// GenerationError means the chat endpoint answered without usable content in
// the expected response shape. Details carries the provider payload.
type GenerationError struct {
	Details string
}

func (e *GenerationError) Error() string {
	return "LLM did not return content: " + e.Details
}
