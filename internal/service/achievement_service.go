package service

import (
	"context"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
)

// AchievementService defines the interface for the derived achievement set.
// Nothing is persisted: the set is recomputed from counts on every call.
type AchievementService interface {
	GetAchievements(ctx context.Context, userID string) (*dto.AchievementsResponse, error)
}

type achievementServiceImpl struct {
	progressRepo domain.ProgressRepository
	quizRepo     domain.QuizResultRepository
}

// NewAchievementService creates a new instance of AchievementService.
func NewAchievementService(progressRepo domain.ProgressRepository, quizRepo domain.QuizResultRepository) AchievementService {
	return &achievementServiceImpl{progressRepo: progressRepo, quizRepo: quizRepo}
}

// GetAchievements derives the badge set, point total and level from the
// user's completed module count and best quiz score.
func (s *achievementServiceImpl) GetAchievements(ctx context.Context, userID string) (*dto.AchievementsResponse, error) {
	completedCount, err := s.progressRepo.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to count completed modules", err)
	}
	quizStats, err := s.quizRepo.GetQuizStatsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to load quiz stats", err)
	}

	achievements := domain.EvaluateAchievements(completedCount, quizStats.BestScore)
	totalPoints := domain.TotalPoints(achievements)
	level := domain.LevelForPoints(totalPoints)

	return &dto.AchievementsResponse{
		Achievements: achievements,
		TotalPoints:  totalPoints,
		Level:        level,
		LevelTitle:   domain.LevelTitle(level),
	}, nil
}
