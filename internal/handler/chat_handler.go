package handler

import (
	"finlearn/internal/dto"
	"finlearn/internal/middleware"
	"finlearn/internal/service"
	"finlearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles finance tutor chat HTTP requests.
type ChatHandler struct {
	chatService service.ChatService
	validator   *validation.Validator
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		validator:   validation.NewValidator(),
	}
}

// Chat sends one turn to the finance tutor.
// @Summary Chat with the finance tutor
// @Description Returns the tutor's reply and the extended conversation history.
// @Tags chat
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.ChatRequest true "Chat turn"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "LLM unavailable"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateChatRequest(req.Message); len(errs) > 0 {
		return errs
	}

	reply, err := h.chatService.Chat(c.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(reply)
}
