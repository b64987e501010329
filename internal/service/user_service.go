package service

import (
	"context"

	"finlearn/internal/domain"
	"finlearn/internal/dto"

	"golang.org/x/sync/errgroup"
)

// UserService defines the interface for user profile and statistics reads.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
}

type userServiceImpl struct {
	userRepo     domain.UserRepository
	progressRepo domain.ProgressRepository
	moduleRepo   domain.ModuleRepository
	quizRepo     domain.QuizResultRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo domain.UserRepository,
	progressRepo domain.ProgressRepository,
	moduleRepo domain.ModuleRepository,
	quizRepo domain.QuizResultRepository,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		progressRepo: progressRepo,
		moduleRepo:   moduleRepo,
		quizRepo:     quizRepo,
	}
}

// GetProfile returns the public projection of the user account.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// GetUserStats aggregates the user's learning snapshot. The three reads are
// independent and fanned out; the values are not a single consistent
// snapshot. Unlike recommendations, a failed read propagates as an error.
func (s *userServiceImpl) GetUserStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	var (
		completedCount int
		totalModules   int
		quizStats      *domain.QuizStats
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		completedCount, err = s.progressRepo.CountCompletedByUser(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		totalModules, err = s.moduleRepo.CountModules(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		quizStats, err = s.quizRepo.GetQuizStatsByUser(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.NewUpstreamError("failed to aggregate user stats", err)
	}

	return &dto.UserStatsResponse{
		ModulesCompleted: completedCount,
		TotalModules:     totalModules,
		AverageScore:     quizStats.AverageScore,
		BestScore:        quizStats.BestScore,
		TotalQuizzes:     quizStats.TotalQuizzes,
	}, nil
}
