package handler

import (
	"finlearn/internal/dto"
	"finlearn/internal/middleware"
	"finlearn/internal/service"
	"finlearn/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ModuleHandler handles learning module HTTP requests.
type ModuleHandler struct {
	moduleService         service.ModuleService
	recommendationService service.RecommendationService
	validator             *validation.Validator
}

// NewModuleHandler creates a new ModuleHandler instance.
func NewModuleHandler(
	moduleService service.ModuleService,
	recommendationService service.RecommendationService,
) *ModuleHandler {
	return &ModuleHandler{
		moduleService:         moduleService,
		recommendationService: recommendationService,
		validator:             validation.NewValidator(),
	}
}

// GetModules returns the full module catalog.
// @Summary List learning modules
// @Tags modules
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ModuleResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /modules [get]
func (h *ModuleHandler) GetModules(c *fiber.Ctx) error {
	modules, err := h.moduleService.GetAllModules(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(modules)
}

// GetStatus reports whether the catalog has been populated. Public.
// @Summary Get catalog status
// @Tags modules
// @Produce json
// @Success 200 {object} dto.ModuleStatusResponse
// @Router /modules/status [get]
func (h *ModuleHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.moduleService.GetModuleStatus(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(status)
}

// SeedModules upserts the premade catalog.
// @Summary Seed premade modules
// @Description Upserts the built-in catalog keyed by title; safe to repeat.
// @Tags modules
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.SeedModulesResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /modules/seed [post]
func (h *ModuleHandler) SeedModules(c *fiber.Ctx) error {
	result, err := h.moduleService.SeedPremadeModules(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GenerateModule creates a module with the LLM and persists it.
// @Summary Generate a learning module
// @Tags modules
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param body body dto.GenerateModuleRequest true "Generation parameters"
// @Success 201 {object} dto.ModuleResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "LLM unavailable"
// @Router /modules/generate [post]
func (h *ModuleHandler) GenerateModule(c *fiber.Ctx) error {
	var req dto.GenerateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateGenerateRequest(req.Topic, req.Difficulty); len(errs) > 0 {
		return errs
	}

	module, err := h.moduleService.GenerateModule(c.Context(), req.Topic, req.Difficulty, req.EstimatedTime)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(module)
}

// GetRecommendations returns modules matched to the user's skill tier.
// @Summary Get module recommendations
// @Description Serves a safe beginner default when the store is unavailable.
// @Tags modules
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.RecommendationsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /modules/recommendations [get]
func (h *ModuleHandler) GetRecommendations(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	recommendations, err := h.recommendationService.GetRecommendations(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(recommendations)
}
