package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"finlearn/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommendationServiceForTest() (RecommendationService, *MockProgressRepository, *MockModuleRepository) {
	progressRepo := new(MockProgressRepository)
	moduleRepo := new(MockModuleRepository)
	svc := NewRecommendationService(progressRepo, moduleRepo)
	return svc, progressRepo, moduleRepo
}

func catalogModule(id string, difficulty string) *domain.LearningModule {
	return &domain.LearningModule{ID: id, Title: "Module " + id, Difficulty: difficulty}
}

func completedRecords(moduleIDs ...string) []*domain.ProgressRecord {
	records := make([]*domain.ProgressRecord, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		records = append(records, &domain.ProgressRecord{ModuleID: id, Progress: 100, Completed: true})
	}
	return records
}

func TestGetRecommendations_BeginnerSeesOnlyBeginner(t *testing.T) {
	svc, progressRepo, moduleRepo := newRecommendationServiceForTest()
	ctx := context.Background()

	progressRepo.On("GetByUser", ctx, "user-1").Return([]*domain.ProgressRecord{}, nil)
	moduleRepo.On("GetAllModules", ctx).Return([]*domain.LearningModule{
		catalogModule("m1", domain.DifficultyBeginner),
		catalogModule("m2", domain.DifficultyIntermediate),
		catalogModule("m3", domain.DifficultyAdvanced),
	}, nil)

	resp, err := svc.GetRecommendations(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyBeginner, resp.SkillLevel)
	assert.Equal(t, domain.DifficultyIntermediate, resp.NextLevel)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "m1", resp.Recommendations[0].ID)
}

func TestGetRecommendations_TierWidensWithCompletions(t *testing.T) {
	svc, progressRepo, moduleRepo := newRecommendationServiceForTest()
	ctx := context.Background()

	progressRepo.On("GetByUser", ctx, "user-1").Return(completedRecords("m1", "m2"), nil)
	moduleRepo.On("GetAllModules", ctx).Return([]*domain.LearningModule{
		catalogModule("m1", domain.DifficultyBeginner),
		catalogModule("m2", domain.DifficultyBeginner),
		catalogModule("m3", domain.DifficultyIntermediate),
		catalogModule("m4", domain.DifficultyAdvanced),
	}, nil)

	resp, err := svc.GetRecommendations(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyIntermediate, resp.SkillLevel)
	assert.Equal(t, 2, resp.CompletedModules)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "m3", resp.Recommendations[0].ID)
}

func TestGetRecommendations_AdvancedSeesEverythingUncompleted(t *testing.T) {
	svc, progressRepo, moduleRepo := newRecommendationServiceForTest()
	ctx := context.Background()

	progressRepo.On("GetByUser", ctx, "user-1").Return(completedRecords("m1", "m2", "m3", "m4", "m5"), nil)
	moduleRepo.On("GetAllModules", ctx).Return([]*domain.LearningModule{
		catalogModule("m1", domain.DifficultyBeginner),
		catalogModule("m6", domain.DifficultyAdvanced),
		catalogModule("m7", domain.DifficultyBeginner),
	}, nil)

	resp, err := svc.GetRecommendations(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyAdvanced, resp.SkillLevel)
	assert.Equal(t, "expert", resp.NextLevel)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "m6", resp.Recommendations[0].ID)
	assert.Equal(t, "m7", resp.Recommendations[1].ID)
}

func TestGetRecommendations_TruncatesToSixInCatalogOrder(t *testing.T) {
	svc, progressRepo, moduleRepo := newRecommendationServiceForTest()
	ctx := context.Background()

	catalog := make([]*domain.LearningModule, 0, 10)
	for i := 1; i <= 10; i++ {
		catalog = append(catalog, catalogModule(fmt.Sprintf("m%02d", i), domain.DifficultyBeginner))
	}
	progressRepo.On("GetByUser", ctx, "user-1").Return([]*domain.ProgressRecord{}, nil)
	moduleRepo.On("GetAllModules", ctx).Return(catalog, nil)

	resp, err := svc.GetRecommendations(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 6)
	assert.Equal(t, "m01", resp.Recommendations[0].ID)
	assert.Equal(t, "m06", resp.Recommendations[5].ID)
}

func TestGetRecommendations_FailsOpenOnStoreErrors(t *testing.T) {
	t.Run("progress read failure", func(t *testing.T) {
		svc, progressRepo, _ := newRecommendationServiceForTest()
		ctx := context.Background()
		progressRepo.On("GetByUser", ctx, "user-1").Return(nil, errors.New("db down"))

		resp, err := svc.GetRecommendations(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.DifficultyBeginner, resp.SkillLevel)
		assert.Empty(t, resp.Recommendations)
		assert.NotNil(t, resp.Recommendations)
		assert.Equal(t, 0, resp.CompletedModules)
		assert.Equal(t, domain.DifficultyIntermediate, resp.NextLevel)
	})

	t.Run("catalog read failure", func(t *testing.T) {
		svc, progressRepo, moduleRepo := newRecommendationServiceForTest()
		ctx := context.Background()
		progressRepo.On("GetByUser", ctx, "user-1").Return(completedRecords("m1"), nil)
		moduleRepo.On("GetAllModules", ctx).Return(nil, errors.New("db down"))

		resp, err := svc.GetRecommendations(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, domain.DifficultyBeginner, resp.SkillLevel)
		assert.Empty(t, resp.Recommendations)
	})
}
