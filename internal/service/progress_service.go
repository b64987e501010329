package service

import (
	"context"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"
	"finlearn/internal/util"

	"go.uber.org/zap"
)

// ProgressService defines the interface for progress reporting.
type ProgressService interface {
	UpdateProgress(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error)
	GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error)
}

type progressServiceImpl struct {
	progressRepo domain.ProgressRepository
	moduleRepo   domain.ModuleRepository
	quizRepo     domain.QuizResultRepository
	txManager    domain.TransactionManager
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(
	progressRepo domain.ProgressRepository,
	moduleRepo domain.ModuleRepository,
	quizRepo domain.QuizResultRepository,
	txManager domain.TransactionManager,
) ProgressService {
	return &progressServiceImpl{
		progressRepo: progressRepo,
		moduleRepo:   moduleRepo,
		quizRepo:     quizRepo,
		txManager:    txManager,
	}
}

// UpdateProgress upserts the single progress row for (userID, moduleID) and
// returns it with the achievements derived from the post-write state. The
// write and the derivation run in one transaction so the evaluation sees the
// row it just changed.
func (s *progressServiceImpl) UpdateProgress(ctx context.Context, userID, moduleID string, progress int, completed bool) (*dto.UpdateProgressResponse, error) {
	appLogger := logger.Get()

	module, err := s.moduleRepo.GetModuleByID(ctx, moduleID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to load module", err)
	}
	if module == nil {
		return nil, domain.NewModuleNotFoundError(moduleID)
	}

	var response *dto.UpdateProgressResponse
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()

		record, err := s.progressRepo.GetByUserAndModule(txCtx, userID, moduleID)
		if err != nil {
			return domain.NewUpstreamError("failed to load progress", err)
		}

		if record == nil {
			record = &domain.ProgressRecord{
				ID:        util.NewULID(),
				UserID:    userID,
				ModuleID:  moduleID,
				StartedAt: now,
			}
			record.ApplyReport(progress, completed, now)
			if err := s.progressRepo.CreateProgress(txCtx, record); err != nil {
				return domain.NewUpstreamError("failed to create progress", err)
			}
		} else {
			record.ApplyReport(progress, completed, now)
			if err := s.progressRepo.UpdateProgress(txCtx, record); err != nil {
				return domain.NewUpstreamError("failed to update progress", err)
			}
		}

		completedCount, err := s.progressRepo.CountCompletedByUser(txCtx, userID)
		if err != nil {
			return domain.NewUpstreamError("failed to count completed modules", err)
		}
		quizStats, err := s.quizRepo.GetQuizStatsByUser(txCtx, userID)
		if err != nil {
			return domain.NewUpstreamError("failed to load quiz stats", err)
		}

		response = &dto.UpdateProgressResponse{
			Progress:     dto.NewProgressResponse(record),
			Achievements: domain.EvaluateAchievements(completedCount, quizStats.BestScore),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	appLogger.Info("Progress updated",
		zap.String("userID", userID),
		zap.String("moduleID", moduleID),
		zap.Int("progress", response.Progress.Progress),
		zap.Bool("completed", response.Progress.Completed))
	return response, nil
}

// GetUserProgress lists all progress rows of the user.
func (s *progressServiceImpl) GetUserProgress(ctx context.Context, userID string) ([]dto.ProgressResponse, error) {
	records, err := s.progressRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewUpstreamError("failed to list progress", err)
	}
	return dto.NewProgressResponses(records), nil
}
