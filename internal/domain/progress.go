package domain

import (
	"context"
	"time"
)

// ProgressRecord is the single mutable row per (user, module) pair.
type ProgressRecord struct {
	ID          string
	UserID      string
	ModuleID    string
	Progress    int // 0-100
	Completed   bool
	StartedAt   time.Time
	CompletedAt *time.Time // set on the first transition to completed
	UpdatedAt   time.Time
}

// ClampProgress truncates an out-of-range progress value into [0,100].
// Out-of-range reports are clamped rather than rejected.
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// ApplyReport overwrites the record with a new progress report. Later reports
// may lower progress; the record keeps whatever was reported last. The first
// report that sets completed stamps CompletedAt; further completed reports
// keep the original stamp, and an uncompleted report clears it.
func (p *ProgressRecord) ApplyReport(progress int, completed bool, now time.Time) {
	p.Progress = ClampProgress(progress)
	switch {
	case completed && p.CompletedAt == nil:
		p.CompletedAt = &now
	case !completed:
		p.CompletedAt = nil
	}
	p.Completed = completed
	p.UpdatedAt = now
}

// ProgressRepository defines the interface for progress persistence.
type ProgressRepository interface {
	GetByUserAndModule(ctx context.Context, userID, moduleID string) (*ProgressRecord, error)
	GetByUser(ctx context.Context, userID string) ([]*ProgressRecord, error)
	CreateProgress(ctx context.Context, record *ProgressRecord) error
	UpdateProgress(ctx context.Context, record *ProgressRecord) error
	CountCompletedByUser(ctx context.Context, userID string) (int, error)
	GetByUserOnDate(ctx context.Context, userID string, date string) ([]*ProgressRecord, error)
}

// DailyUsage is derived from today's progress rows; it is never stored.
// For premium accounts ModulesRemaining always reports the full allowance,
// regardless of how many modules were started; premium is never gated, so the
// value is advisory there, not a countdown.
type DailyUsage struct {
	Date             string
	ModulesStarted   int
	ModulesCompleted int
	ModulesRemaining int
	IsLimitReached   bool
	IsPremium        bool
}

// Usage tracking actions accepted by the daily gate.
const (
	ActionModuleStarted   = "module_started"
	ActionModuleCompleted = "module_completed"
)

// DeriveDailyUsage computes the usage snapshot from today's progress rows.
// Premium accounts are never gated.
func DeriveDailyUsage(date string, todays []*ProgressRecord, dailyLimit int, isPremium bool) DailyUsage {
	started := len(todays)
	completed := 0
	for _, p := range todays {
		if p.Completed {
			completed++
		}
	}

	usage := DailyUsage{
		Date:             date,
		ModulesStarted:   started,
		ModulesCompleted: completed,
		IsPremium:        isPremium,
	}
	if isPremium {
		usage.ModulesRemaining = dailyLimit
		return usage
	}

	remaining := dailyLimit - started
	if remaining < 0 {
		remaining = 0
	}
	usage.ModulesRemaining = remaining
	usage.IsLimitReached = started >= dailyLimit
	return usage
}
