package ai

import (
	"context"
	"time"

	"github.com/knickknack27/mb3/internal/session"
	openai "github.com/sashabaranov/go-openai"
)

// Service produces the assistant's reply: persona prompt plus knowledge base
// as system context, then the full ordered history, then the newest user
// utterance.
type Service struct {
	client  ChatClient
	appName string
	kbPath  string
	timeout time.Duration
}

func NewService(client ChatClient, appName, kbPath string, timeout time.Duration) *Service {
	return &Service{
		client:  client,
		appName: appName,
		kbPath:  kbPath,
		timeout: timeout,
	}
}

func (s *Service) Generate(ctx context.Context, history []session.Turn, userText string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: SystemPrompt(s.appName, ReadKnowledgeBase(s.kbPath)),
	})
	for _, t := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    t.Role,
			Content: t.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userText,
	})

	ctxLLM, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.GetCompletion(ctxLLM, messages)
}
