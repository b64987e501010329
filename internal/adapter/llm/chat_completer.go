package llm

import (
	"context"
	"fmt"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// chatCompleter implements domain.ChatCompleter on top of a langchaingo model.
type chatCompleter struct {
	model   llms.Model
	timeout time.Duration
}

// NewChatCompleter creates a new instance of chatCompleter.
func NewChatCompleter(model llms.Model, timeout time.Duration) domain.ChatCompleter {
	return &chatCompleter{model: model, timeout: timeout}
}

// Complete sends the system prompt, prior turns and the new user message to
// the LLM and returns the assistant reply.
func (c *chatCompleter) Complete(ctx context.Context, systemPrompt string, history []domain.ChatMessage, userMessage string) (string, error) {
	l := logger.Get()

	messages := make([]llms.MessageContent, 0, len(history)+2)
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt))
	for _, turn := range history {
		role := schema.ChatMessageTypeHuman
		if turn.Role == "assistant" {
			role = schema.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, turn.Content))
	}
	messages = append(messages, llms.TextParts(schema.ChatMessageTypeHuman, userMessage))

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(callCtx, messages,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(500),
	)
	if err != nil {
		l.Error("LLM chat completion failed", zap.Error(err))
		return "", domain.NewLLMServiceError(fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", domain.NewLLMServiceError(fmt.Errorf("LLM returned no choices"))
	}

	return resp.Choices[0].Content, nil
}
