package handler

import (
	"finlearn/internal/middleware"
	"finlearn/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile and statistics HTTP requests.
type UserHandler struct {
	userService        service.UserService
	progressService    service.ProgressService
	achievementService service.AchievementService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(
	userService service.UserService,
	progressService service.ProgressService,
	achievementService service.AchievementService,
) *UserHandler {
	return &UserHandler{
		userService:        userService,
		progressService:    progressService,
		achievementService: achievementService,
	}
}

func authenticatedUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(string)
	if !ok || userID == "" {
		return "", c.Status(fiber.StatusUnauthorized).JSON(middleware.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "User not authenticated", Status: fiber.StatusUnauthorized,
		})
	}
	return userID, nil
}

// GetProfile returns the authenticated user's profile.
// @Summary Get user profile
// @Tags user
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	profile, err := h.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

// GetStats returns the aggregated learning snapshot.
// @Summary Get user statistics
// @Description Aggregates completed modules, catalog size and quiz stats.
// @Tags user
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.UserStatsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse "Store unavailable"
// @Router /user/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	stats, err := h.userService.GetUserStats(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetProgress lists the authenticated user's progress rows.
// @Summary Get user progress
// @Tags user
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {array} dto.ProgressResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /user/progress [get]
func (h *UserHandler) GetProgress(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	records, err := h.progressService.GetUserProgress(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// GetAchievements returns the derived achievement set.
// @Summary Get achievements
// @Description Recomputes the badge set, total points and level on every call.
// @Tags user
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.AchievementsResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /achievements [get]
func (h *UserHandler) GetAchievements(c *fiber.Ctx) error {
	userID, err := authenticatedUserID(c)
	if userID == "" {
		return err
	}

	achievements, err := h.achievementService.GetAchievements(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(achievements)
}
