package service

import (
	"context"
	"testing"

	"finlearn/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUsageServiceForTest(dailyLimit int) (UsageService, *MockProgressRepository, *MockUserRepository) {
	progressRepo := new(MockProgressRepository)
	userRepo := new(MockUserRepository)
	svc := NewUsageService(progressRepo, userRepo, dailyLimit)
	return svc, progressRepo, userRepo
}

func stubUser(premium bool) *domain.User {
	return &domain.User{ID: "user-1", Email: "a@b.com", IsPremium: premium}
}

func todaysRows(n int) []*domain.ProgressRecord {
	rows := make([]*domain.ProgressRecord, n)
	for i := range rows {
		rows[i] = &domain.ProgressRecord{UserID: "user-1"}
	}
	return rows
}

func TestGetDailyUsage(t *testing.T) {
	t.Run("fresh day has full allowance", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(false), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(0), nil)

		resp, err := svc.GetDailyUsage(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, 0, resp.ModulesStarted)
		assert.Equal(t, 2, resp.ModulesRemaining)
		assert.False(t, resp.IsLimitReached)
	})

	t.Run("limit reached exactly at the boundary", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(false), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(2), nil)

		resp, err := svc.GetDailyUsage(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, 2, resp.ModulesStarted)
		assert.Equal(t, 0, resp.ModulesRemaining)
		assert.True(t, resp.IsLimitReached)
	})

	t.Run("premium never hits the gate", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(true), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(5), nil)

		resp, err := svc.GetDailyUsage(context.Background(), "user-1")

		require.NoError(t, err)
		assert.True(t, resp.IsPremium)
		assert.False(t, resp.IsLimitReached)
	})
}

func TestTrackUsage(t *testing.T) {
	t.Run("rejects unknown action", func(t *testing.T) {
		svc, _, _ := newUsageServiceForTest(2)

		_, err := svc.TrackUsage(context.Background(), "user-1", "module_paused")

		assertDomainCode(t, err, domain.CodeInvalidInput)
	})

	t.Run("module_started passes with allowance left", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(false), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(1), nil)

		resp, err := svc.TrackUsage(context.Background(), "user-1", domain.ActionModuleStarted)

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ModulesRemaining)
	})

	t.Run("module_started at a closed gate", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(false), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(2), nil)

		_, err := svc.TrackUsage(context.Background(), "user-1", domain.ActionModuleStarted)

		assertDomainCode(t, err, domain.CodeLimitReached)
	})

	t.Run("module_completed always passes", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(false), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(3), nil)

		resp, err := svc.TrackUsage(context.Background(), "user-1", domain.ActionModuleCompleted)

		require.NoError(t, err)
		assert.True(t, resp.IsLimitReached)
	})

	t.Run("premium bypasses a closed gate", func(t *testing.T) {
		svc, progressRepo, userRepo := newUsageServiceForTest(2)
		userRepo.On("GetUserByID", mock.Anything, "user-1").Return(stubUser(true), nil)
		progressRepo.On("GetByUserOnDate", mock.Anything, "user-1", mock.Anything).Return(todaysRows(4), nil)

		resp, err := svc.TrackUsage(context.Background(), "user-1", domain.ActionModuleStarted)

		require.NoError(t, err)
		assert.False(t, resp.IsLimitReached)
	})
}
