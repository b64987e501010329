package dto

import (
	"time"

	"finlearn/internal/domain"
)

// UpdateProgressRequest represents the request body for a progress report.
// @Description Request body for reporting module progress
type UpdateProgressRequest struct {
	ModuleID  string `json:"moduleId" validate:"required"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// ProgressResponse represents one progress record in the API response.
type ProgressResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	ModuleID    string     `json:"moduleId"`
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UpdateProgressResponse returns the upserted record together with the
// achievements derived from the post-write state.
type UpdateProgressResponse struct {
	Progress     ProgressResponse     `json:"progress"`
	Achievements []domain.Achievement `json:"achievements"`
}

// AchievementsResponse is the response of the achievement evaluator.
// @Description Derived achievements with point and level totals
type AchievementsResponse struct {
	Achievements []domain.Achievement `json:"achievements"`
	TotalPoints  int                  `json:"totalPoints"`
	Level        int                  `json:"level"`
	LevelTitle   string               `json:"levelTitle"`
}

// DailyUsageResponse is the derived daily usage snapshot.
// @Description Daily module usage and remaining allowance
type DailyUsageResponse struct {
	Date             string `json:"date"`
	ModulesStarted   int    `json:"modulesStarted"`
	ModulesCompleted int    `json:"modulesCompleted"`
	ModulesRemaining int    `json:"modulesRemaining"`
	IsLimitReached   bool   `json:"isLimitReached"`
	IsPremium        bool   `json:"isPremium"`
}

// TrackUsageRequest represents the request body for the usage gate.
// @Description Request body for tracking a usage action
type TrackUsageRequest struct {
	Action string `json:"action" validate:"required"` // module_started, module_completed
}

// NewProgressResponse converts a domain progress record into its API shape.
func NewProgressResponse(p *domain.ProgressRecord) ProgressResponse {
	return ProgressResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		ModuleID:    p.ModuleID,
		Progress:    p.Progress,
		Completed:   p.Completed,
		StartedAt:   p.StartedAt,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewProgressResponses converts a slice of domain progress records.
func NewProgressResponses(records []*domain.ProgressRecord) []ProgressResponse {
	out := make([]ProgressResponse, 0, len(records))
	for _, p := range records {
		out = append(out, NewProgressResponse(p))
	}
	return out
}

// NewDailyUsageResponse converts the derived usage snapshot.
func NewDailyUsageResponse(u domain.DailyUsage) DailyUsageResponse {
	return DailyUsageResponse{
		Date:             u.Date,
		ModulesStarted:   u.ModulesStarted,
		ModulesCompleted: u.ModulesCompleted,
		ModulesRemaining: u.ModulesRemaining,
		IsLimitReached:   u.IsLimitReached,
		IsPremium:        u.IsPremium,
	}
}
