package service

import (
	"context"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
)

const financeTutorSystemPrompt = `You are a knowledgeable and friendly financial advisor AI assistant. Your role is to help users understand financial concepts, investment strategies, personal finance, and answer their money-related questions.

Key guidelines:
- Provide accurate, helpful financial information
- Explain complex financial concepts in simple, understandable terms
- Always remind users that your advice is for educational purposes and they should consult with qualified financial professionals for personalized advice
- Be encouraging and supportive, especially for beginners
- Focus on practical, actionable advice when appropriate
- If asked about specific investments, remind users about diversification and risk management
- Keep responses concise but comprehensive
- Use examples when helpful to illustrate concepts

You can help with topics like:
- Basic financial concepts (budgeting, saving, investing)
- Investment types (stocks, bonds, mutual funds, ETFs, etc.)
- Retirement planning
- Tax implications
- Risk management
- Market analysis and trends
- Personal finance strategies
- Financial goal setting

Remember to be encouraging and make financial topics accessible to everyone, regardless of their current knowledge level.`

// ChatService defines the interface for the finance tutor chat.
type ChatService interface {
	Chat(ctx context.Context, message string, history []domain.ChatMessage) (*dto.ChatResponse, error)
}

type chatServiceImpl struct {
	completer domain.ChatCompleter
}

// NewChatService creates a new instance of ChatService.
func NewChatService(completer domain.ChatCompleter) ChatService {
	return &chatServiceImpl{completer: completer}
}

// Chat sends one user turn to the tutor and returns the reply together with
// the extended history, so the client can replay it on the next turn.
func (s *chatServiceImpl) Chat(ctx context.Context, message string, history []domain.ChatMessage) (*dto.ChatResponse, error) {
	reply, err := s.completer.Complete(ctx, financeTutorSystemPrompt, history, message)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	extended := make([]domain.ChatMessage, 0, len(history)+2)
	extended = append(extended, history...)
	extended = append(extended,
		domain.ChatMessage{Role: "user", Content: message},
		domain.ChatMessage{Role: "assistant", Content: reply},
	)

	return &dto.ChatResponse{
		Response:            reply,
		ConversationHistory: extended,
	}, nil
}
