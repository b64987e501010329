package service

import (
	"context"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"

	"go.uber.org/zap"
)

const maxRecommendations = 6

// RecommendationService defines the interface for the recommendation engine.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string) (*dto.RecommendationsResponse, error)
}

type recommendationServiceImpl struct {
	progressRepo domain.ProgressRepository
	moduleRepo   domain.ModuleRepository
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(progressRepo domain.ProgressRepository, moduleRepo domain.ModuleRepository) RecommendationService {
	return &recommendationServiceImpl{progressRepo: progressRepo, moduleRepo: moduleRepo}
}

// GetRecommendations filters the catalog to modules the user has not completed
// and whose difficulty their skill tier allows, truncated to the first six in
// catalog order. Any store failure falls back to the safe beginner default
// rather than an error; this endpoint must never block the dashboard.
func (s *recommendationServiceImpl) GetRecommendations(ctx context.Context, userID string) (*dto.RecommendationsResponse, error) {
	appLogger := logger.Get()

	defaultResponse := &dto.RecommendationsResponse{
		SkillLevel:       domain.DifficultyBeginner,
		Recommendations:  []dto.ModuleResponse{},
		CompletedModules: 0,
		NextLevel:        domain.DifficultyIntermediate,
	}

	records, err := s.progressRepo.GetByUser(ctx, userID)
	if err != nil {
		appLogger.Warn("Recommendation read failed, serving default",
			zap.String("userID", userID), zap.Error(err))
		return defaultResponse, nil
	}

	completedIDs := make(map[string]bool)
	completedCount := 0
	for _, r := range records {
		if r.Completed {
			completedIDs[r.ModuleID] = true
			completedCount++
		}
	}

	modules, err := s.moduleRepo.GetAllModules(ctx)
	if err != nil {
		appLogger.Warn("Recommendation catalog read failed, serving default",
			zap.String("userID", userID), zap.Error(err))
		return defaultResponse, nil
	}

	skillLevel := domain.SkillLevelForCompleted(completedCount)

	recommendations := make([]dto.ModuleResponse, 0, maxRecommendations)
	for _, m := range modules {
		if completedIDs[m.ID] {
			continue
		}
		if !domain.DifficultyVisible(skillLevel, m.Difficulty) {
			continue
		}
		recommendations = append(recommendations, dto.NewModuleResponse(m))
		if len(recommendations) == maxRecommendations {
			break
		}
	}

	return &dto.RecommendationsResponse{
		SkillLevel:       skillLevel,
		Recommendations:  recommendations,
		CompletedModules: completedCount,
		NextLevel:        domain.NextSkillLevel(skillLevel),
	}, nil
}
