package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"finlearn/internal/config"
	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"
	"finlearn/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error", Env: "development"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

const testModuleID = "01HZXCVBNMASDFGHJKQWERTYT0"

type stubProgressService struct {
	updateFn func(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error)
	listFn   func(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
}

func (s *stubProgressService) UpdateProgress(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error) {
	return s.updateFn(ctx, userID, moduleID, progress, completed)
}

func (s *stubProgressService) GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	return s.listFn(ctx, userID)
}

type stubUsageService struct {
	dailyFn func(ctx context.Context, userID string) (*dto.DailyUsageResponse, error)
	trackFn func(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error)
}

func (s *stubUsageService) GetDailyUsage(ctx context.Context, userID string) (*dto.DailyUsageResponse, error) {
	return s.dailyFn(ctx, userID)
}

func (s *stubUsageService) TrackUsage(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error) {
	return s.trackFn(ctx, userID, action)
}

// newTestApp builds a fiber app with the central error handler and a stub auth
// middleware that injects the given user.
func newTestApp(userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	})
	return app
}

func TestProgressHandler_UpdateProgress(t *testing.T) {
	t.Run("reports progress for the authenticated user", func(t *testing.T) {
		svc := &stubProgressService{
			updateFn: func(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error) {
				assert.Equal(t, "user-1", userID)
				assert.Equal(t, testModuleID, moduleID)
				assert.Equal(t, 100, progress)
				assert.True(t, completed)
				return &dto.UpdateProgressResponse{
					Progress:     dto.ProgressResponse{ModuleID: moduleID, Progress: 100, Completed: true},
					Achievements: []domain.Achievement{{ID: "first-module", Points: 10}},
				}, nil
			},
		}
		app := newTestApp("user-1")
		app.Post("/api/progress/update", NewProgressHandler(svc).UpdateProgress)

		req := httptest.NewRequest("POST", "/api/progress/update",
			strings.NewReader(`{"moduleId":"`+testModuleID+`","progress":100,"completed":true}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.UpdateProgressResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 100, body.Progress.Progress)
		require.Len(t, body.Achievements, 1)
		assert.Equal(t, "first-module", body.Achievements[0].ID)
	})

	t.Run("rejects a malformed module id", func(t *testing.T) {
		svc := &stubProgressService{}
		app := newTestApp("user-1")
		app.Post("/api/progress/update", NewProgressHandler(svc).UpdateProgress)

		req := httptest.NewRequest("POST", "/api/progress/update",
			strings.NewReader(`{"moduleId":"nope","progress":10}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown module maps to 404", func(t *testing.T) {
		svc := &stubProgressService{
			updateFn: func(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error) {
				return nil, domain.NewModuleNotFoundError(moduleID)
			},
		}
		app := newTestApp("user-1")
		app.Post("/api/progress/update", NewProgressHandler(svc).UpdateProgress)

		req := httptest.NewRequest("POST", "/api/progress/update",
			strings.NewReader(`{"moduleId":"`+testModuleID+`","progress":10}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		payload, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(payload), "MODULE_NOT_FOUND")
	})

	t.Run("missing auth maps to 401", func(t *testing.T) {
		svc := &stubProgressService{}
		app := newTestApp("")
		app.Post("/api/progress/update", NewProgressHandler(svc).UpdateProgress)

		req := httptest.NewRequest("POST", "/api/progress/update",
			strings.NewReader(`{"moduleId":"`+testModuleID+`"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestUsageHandler_TrackUsage(t *testing.T) {
	t.Run("closed gate maps to 429", func(t *testing.T) {
		svc := &stubUsageService{
			trackFn: func(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error) {
				return nil, domain.NewLimitReachedError()
			},
		}
		app := newTestApp("user-1")
		app.Post("/api/usage/track", NewUsageHandler(svc).TrackUsage)

		req := httptest.NewRequest("POST", "/api/usage/track",
			strings.NewReader(`{"action":"module_started"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

		payload, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(payload), "LIMIT_REACHED")
	})

	t.Run("unknown action is rejected before the service", func(t *testing.T) {
		svc := &stubUsageService{
			trackFn: func(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error) {
				t.Fatal("service should not be called")
				return nil, nil
			},
		}
		app := newTestApp("user-1")
		app.Post("/api/usage/track", NewUsageHandler(svc).TrackUsage)

		req := httptest.NewRequest("POST", "/api/usage/track",
			strings.NewReader(`{"action":"module_paused"}`))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns the usage snapshot", func(t *testing.T) {
		svc := &stubUsageService{
			dailyFn: func(ctx context.Context, userID string) (*dto.DailyUsageResponse, error) {
				return &dto.DailyUsageResponse{Date: "2026-09-01", ModulesStarted: 1, ModulesRemaining: 1}, nil
			},
		}
		app := newTestApp("user-1")
		app.Get("/api/usage/daily", NewUsageHandler(svc).GetDailyUsage)

		resp, err := app.Test(httptest.NewRequest("GET", "/api/usage/daily", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.DailyUsageResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 1, body.ModulesRemaining)
		assert.False(t, body.IsLimitReached)
	})
}
