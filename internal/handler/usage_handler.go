package handler

import (
	"finlearn/internal/dto"
	"finlearn/internal/middleware"
	"finlearn/internal/service"
	"finlearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// UsageHandler handles daily usage gate HTTP requests.
type UsageHandler struct {
	usageService service.UsageService
	validator    *validation.Validator
}

// NewUsageHandler creates a new UsageHandler instance.
func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		validator:    validation.NewValidator(),
	}
}

// GetDailyUsage returns the caller's usage snapshot for today.
// @Summary Get daily usage
// @Tags usage
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.DailyUsageResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /usage/daily [get]
func (h *UsageHandler) GetDailyUsage(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	usage, err := h.usageService.GetDailyUsage(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(usage)
}

// TrackUsage checks an action against the daily gate.
// @Summary Track a usage action
// @Description module_started fails with 429 when the daily gate is closed.
// @Tags usage
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.TrackUsageRequest true "Action to track"
// @Success 200 {object} dto.DailyUsageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse "Daily limit reached"
// @Router /usage/track [post]
func (h *UsageHandler) TrackUsage(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	var req dto.TrackUsageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateTrackUsageRequest(req.Action); len(errs) > 0 {
		return errs
	}

	usage, err := h.usageService.TrackUsage(c.Context(), userID, req.Action)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(usage)
}
