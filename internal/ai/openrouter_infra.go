package ai

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterClient drives an OpenAI-compatible chat endpoint. OpenRouter
// speaks the same wire protocol, so the stock client with a swapped base URL
// is all that is needed.
type OpenRouterClient struct {
	client *openai.Client
	model  string
}

func NewOpenRouterClient(apiKey, baseURL, model string) *OpenRouterClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenRouterClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *OpenRouterClient) GetCompletion(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		raw, _ := json.Marshal(resp)
		return "", &GenerationError{Details: string(raw)}
	}
	return resp.Choices[0].Message.Content, nil
}
