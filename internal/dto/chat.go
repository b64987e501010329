package dto

import "finlearn/internal/domain"

// ChatRequest represents the request body for the finance tutor chat.
// @Description Request body for one chat turn with the tutor
type ChatRequest struct {
	Message             string               `json:"message" validate:"required"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

// ChatResponse carries the tutor's reply together with the extended history,
// so the client can send it back verbatim on the next turn.
type ChatResponse struct {
	Response            string               `json:"response"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}
