package handler

import (
	"finlearn/internal/dto"
	"finlearn/internal/middleware"
	"finlearn/internal/service"
	"finlearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles progress reporting HTTP requests.
type ProgressHandler struct {
	progressService service.ProgressService
	validator       *validation.Validator
}

// NewProgressHandler creates a new ProgressHandler instance.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		validator:       validation.NewValidator(),
	}
}

// UpdateProgress upserts the caller's progress on a module.
// @Summary Report module progress
// @Description Upserts the single row for (user, module) and returns it with fresh achievements.
// @Tags progress
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProgressRequest true "Progress report"
// @Success 200 {object} dto.UpdateProgressResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse "Module not found"
// @Router /progress/update [post]
func (h *ProgressHandler) UpdateProgress(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	var req dto.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateUpdateProgressRequest(req.ModuleID); len(errs) > 0 {
		return errs
	}

	result, err := h.progressService.UpdateProgress(c.Context(), userID, req.ModuleID, req.Progress, req.Completed)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
