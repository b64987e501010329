package domain

import (
	"context"
	"time"
)

// Quiz types recorded with each result.
const (
	QuizTypeModule      = "module"
	QuizTypeAIGenerated = "ai-generated"
)

// QuizQuestion is one multiple-choice question of a taken or generated quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResult is an immutable record of one quiz attempt. Append-only.
type QuizResult struct {
	ID             string
	UserID         string
	ModuleID       string // empty for ai-generated quizzes
	QuizType       string
	Questions      []QuizQuestion
	Answers        []int // selected option index per question
	Score          int   // 0-100
	TotalQuestions int
	CorrectAnswers int
	CreatedAt      time.Time
}

// Validate checks a result before it is recorded.
func (q *QuizResult) Validate() error {
	if q.UserID == "" {
		return NewInvalidInputError("quiz result requires a user")
	}
	if q.QuizType != QuizTypeModule && q.QuizType != QuizTypeAIGenerated {
		return NewInvalidInputError("quiz type must be module or ai-generated")
	}
	if q.Score < 0 || q.Score > 100 {
		return NewInvalidInputError("quiz score must be between 0 and 100")
	}
	if q.TotalQuestions <= 0 {
		return NewInvalidInputError("quiz must have at least one question")
	}
	if q.CorrectAnswers < 0 || q.CorrectAnswers > q.TotalQuestions {
		return NewInvalidInputError("correct answer count out of range")
	}
	return nil
}

// QuizResultRepository defines the interface for quiz result persistence.
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *QuizResult) error
	GetResultsByUser(ctx context.Context, userID string) ([]*QuizResult, error)
	GetQuizStatsByUser(ctx context.Context, userID string) (*QuizStats, error)
}

// QuizStats are aggregates over a user's quiz results. Zero-valued when the
// user has no results yet.
type QuizStats struct {
	TotalQuizzes int
	AverageScore int
	BestScore    int
}
