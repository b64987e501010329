package service

import (
	"context"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/dto"
	"finlearn/internal/logger"

	"go.uber.org/zap"
)

// UsageService defines the interface for the daily module gate. Usage is
// derived from the day's progress rows; no counter is stored.
type UsageService interface {
	GetDailyUsage(ctx context.Context, userID string) (*dto.DailyUsageResponse, error)
	TrackUsage(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error)
}

type usageServiceImpl struct {
	progressRepo domain.ProgressRepository
	userRepo     domain.UserRepository
	dailyLimit   int
}

// NewUsageService creates a new instance of UsageService.
func NewUsageService(progressRepo domain.ProgressRepository, userRepo domain.UserRepository, dailyLimit int) UsageService {
	return &usageServiceImpl{
		progressRepo: progressRepo,
		userRepo:     userRepo,
		dailyLimit:   dailyLimit,
	}
}

func (s *usageServiceImpl) deriveUsage(ctx context.Context, userID string) (domain.DailyUsage, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return domain.DailyUsage{}, domain.NewUpstreamError("failed to load user", err)
	}
	isPremium := user != nil && user.IsPremium

	// Server-local calendar date; the row's updated_at defines "today".
	date := time.Now().Format("2006-01-02")
	todays, err := s.progressRepo.GetByUserOnDate(ctx, userID, date)
	if err != nil {
		return domain.DailyUsage{}, domain.NewUpstreamError("failed to load today's progress", err)
	}

	return domain.DeriveDailyUsage(date, todays, s.dailyLimit, isPremium), nil
}

// GetDailyUsage returns the usage snapshot for the current server-local date.
func (s *usageServiceImpl) GetDailyUsage(ctx context.Context, userID string) (*dto.DailyUsageResponse, error) {
	usage, err := s.deriveUsage(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewDailyUsageResponse(usage)
	return &resp, nil
}

// TrackUsage checks an action against the gate. module_started fails with
// LIMIT_REACHED when the gate is closed; module_completed always passes.
// The check reads then decides, so two concurrent starts at the boundary can
// both pass; the limit is a soft one.
func (s *usageServiceImpl) TrackUsage(ctx context.Context, userID, action string) (*dto.DailyUsageResponse, error) {
	if action != domain.ActionModuleStarted && action != domain.ActionModuleCompleted {
		return nil, domain.NewInvalidInputError("action must be module_started or module_completed")
	}

	usage, err := s.deriveUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	if action == domain.ActionModuleStarted && usage.IsLimitReached && !usage.IsPremium {
		logger.Get().Info("Daily module limit reached",
			zap.String("userID", userID),
			zap.Int("modulesStarted", usage.ModulesStarted))
		return nil, domain.NewLimitReachedError()
	}

	resp := dto.NewDailyUsageResponse(usage)
	return &resp, nil
}
