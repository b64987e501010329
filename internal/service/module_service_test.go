package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newModuleServiceForTest() (ModuleService, *MockModuleRepository, *MockModuleGenerator, *MockCache) {
	moduleRepo := new(MockModuleRepository)
	generator := new(MockModuleGenerator)
	cacheClient := new(MockCache)
	svc := NewModuleService(moduleRepo, generator, cacheClient, 5*time.Minute)
	return svc, moduleRepo, generator, cacheClient
}

func TestGetAllModules(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss reads the store and fills the cache", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		cacheClient.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss)
		moduleRepo.On("GetAllModules", ctx).Return([]*domain.LearningModule{
			catalogModule("m1", domain.DifficultyBeginner),
		}, nil)
		cacheClient.On("Set", ctx, mock.Anything, mock.Anything, 5*time.Minute).Return(nil)

		resp, err := svc.GetAllModules(ctx)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "m1", resp[0].ID)
		cacheClient.AssertExpectations(t)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		cached, err := json.Marshal([]dto.ModuleResponse{{ID: "m1", Title: "Cached"}})
		require.NoError(t, err)
		cacheClient.On("Get", ctx, mock.Anything).Return(string(cached), nil)

		resp, err := svc.GetAllModules(ctx)

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Cached", resp[0].Title)
		moduleRepo.AssertNotCalled(t, "GetAllModules", mock.Anything)
	})

	t.Run("cache failure degrades to a store read", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		cacheClient.On("Get", ctx, mock.Anything).Return("", errors.New("redis down"))
		moduleRepo.On("GetAllModules", ctx).Return([]*domain.LearningModule{}, nil)
		cacheClient.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		resp, err := svc.GetAllModules(ctx)

		require.NoError(t, err)
		assert.Empty(t, resp)
	})
}

func TestGetModuleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog needs generation", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		cacheClient.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss)
		moduleRepo.On("CountModules", ctx).Return(0, nil)
		cacheClient.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		status, err := svc.GetModuleStatus(ctx)

		require.NoError(t, err)
		assert.False(t, status.HasModules)
		assert.True(t, status.NeedsGeneration)
	})

	t.Run("populated catalog", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		cacheClient.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss)
		moduleRepo.On("CountModules", ctx).Return(5, nil)
		cacheClient.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		status, err := svc.GetModuleStatus(ctx)

		require.NoError(t, err)
		assert.True(t, status.HasModules)
		assert.Equal(t, 5, status.Count)
		assert.False(t, status.NeedsGeneration)
	})
}

func TestSeedPremadeModules(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh catalog creates every module", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		moduleRepo.On("GetModuleByTitle", ctx, mock.Anything).Return(nil, nil)
		moduleRepo.On("SaveModule", ctx, mock.MatchedBy(func(m *domain.LearningModule) bool {
			return m.ID != "" && m.Title != ""
		})).Return(nil)
		cacheClient.On("Delete", ctx, mock.Anything).Return(nil)

		result, err := svc.SeedPremadeModules(ctx)

		require.NoError(t, err)
		total := len(seed.PremadeModules())
		assert.Equal(t, total, result.Created)
		assert.Equal(t, 0, result.Updated)
		assert.Equal(t, total, result.Total)
	})

	t.Run("reseeding refreshes in place and keeps identity", func(t *testing.T) {
		svc, moduleRepo, _, cacheClient := newModuleServiceForTest()
		createdAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		moduleRepo.On("GetModuleByTitle", ctx, mock.Anything).Return(&domain.LearningModule{
			ID:        "existing-id",
			CreatedAt: createdAt,
		}, nil)
		moduleRepo.On("UpdateModule", ctx, mock.MatchedBy(func(m *domain.LearningModule) bool {
			return m.ID == "existing-id" && m.CreatedAt.Equal(createdAt)
		})).Return(nil)
		cacheClient.On("Delete", ctx, mock.Anything).Return(nil)

		result, err := svc.SeedPremadeModules(ctx)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Created)
		assert.Equal(t, len(seed.PremadeModules()), result.Updated)
		moduleRepo.AssertNotCalled(t, "SaveModule", mock.Anything, mock.Anything)
	})
}

func TestGenerateModule(t *testing.T) {
	ctx := context.Background()

	generated := &domain.GeneratedModule{
		Title:       "Understanding Bonds",
		Description: "How fixed income works.",
		Objectives:  []string{"Define a bond"},
		Sections:    []domain.ContentSection{{Section: "Basics", Text: "A bond is a loan."}},
	}

	t.Run("defaults difficulty and estimated time", func(t *testing.T) {
		svc, moduleRepo, generator, cacheClient := newModuleServiceForTest()
		generator.On("GenerateModule", ctx, "bonds", domain.DifficultyBeginner, "30 minutes").Return(generated, nil)
		moduleRepo.On("SaveModule", ctx, mock.MatchedBy(func(m *domain.LearningModule) bool {
			return m.Title == "Understanding Bonds" && m.Topic == "bonds" &&
				m.Difficulty == domain.DifficultyBeginner && m.EstimatedTime == "30 minutes"
		})).Return(nil)
		cacheClient.On("Delete", ctx, mock.Anything).Return(nil)

		resp, err := svc.GenerateModule(ctx, "bonds", "", "")

		require.NoError(t, err)
		assert.Equal(t, "Understanding Bonds", resp.Title)
		generator.AssertExpectations(t)
	})

	t.Run("rejects unknown difficulty", func(t *testing.T) {
		svc, _, generator, _ := newModuleServiceForTest()

		_, err := svc.GenerateModule(ctx, "bonds", "impossible", "")

		assertDomainCode(t, err, domain.CodeInvalidInput)
		generator.AssertNotCalled(t, "GenerateModule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("provider failure maps to the LLM error", func(t *testing.T) {
		svc, _, generator, _ := newModuleServiceForTest()
		generator.On("GenerateModule", ctx, "bonds", domain.DifficultyBeginner, "30 minutes").Return(nil, errors.New("timeout"))

		_, err := svc.GenerateModule(ctx, "bonds", "", "")

		assertDomainCode(t, err, domain.CodeLLMServiceError)
	})

	t.Run("incomplete generation is rejected before persisting", func(t *testing.T) {
		svc, moduleRepo, generator, _ := newModuleServiceForTest()
		generator.On("GenerateModule", ctx, "bonds", domain.DifficultyBeginner, "30 minutes").Return(&domain.GeneratedModule{
			Title: "Understanding Bonds",
		}, nil)

		_, err := svc.GenerateModule(ctx, "bonds", "", "")

		assertDomainCode(t, err, domain.CodeInvalidInput)
		moduleRepo.AssertNotCalled(t, "SaveModule", mock.Anything, mock.Anything)
	})
}
