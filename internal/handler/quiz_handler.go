package handler

import (
	"finlearn/internal/dto"
	"finlearn/internal/middleware"
	"finlearn/internal/service"
	"finlearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation and result HTTP requests.
type QuizHandler struct {
	quizService service.QuizService
	validator   *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance.
func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
		validator:   validation.NewValidator(),
	}
}

// GenerateQuiz creates multiple-choice questions with the LLM.
// @Summary Generate a quiz
// @Description Returns generated questions; nothing is persisted until submitted.
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateQuizRequest true "Generation parameters"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "LLM unavailable"
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateGenerateRequest(req.Topic, req.Difficulty); len(errs) > 0 {
		return errs
	}

	quiz, err := h.quizService.GenerateQuiz(c.Context(), req.Topic, req.Difficulty, req.NumQuestions)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(quiz)
}

// RecordResult appends a completed quiz attempt.
// @Summary Record a quiz result
// @Tags quiz
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.RecordQuizResultRequest true "Quiz attempt"
// @Success 201 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Module not found"
// @Router /quiz/results [post]
func (h *QuizHandler) RecordResult(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	var req dto.RecordQuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateRecordQuizResultRequest(req.ModuleID, req.QuizType); len(errs) > 0 {
		return errs
	}

	result, err := h.quizService.RecordResult(c.Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetResults lists the caller's quiz attempts.
// @Summary List quiz results
// @Tags quiz
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.QuizResultResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /quiz/results [get]
func (h *QuizHandler) GetResults(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	results, err := h.quizService.GetResults(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(results)
}
