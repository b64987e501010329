package dto

import (
	"time"

	"finlearn/internal/domain"
)

// GenerateQuizRequest represents the request body for AI quiz generation.
// @Description Request body for generating a multiple-choice quiz
type GenerateQuizRequest struct {
	Topic        string `json:"topic" validate:"required"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// GenerateQuizResponse carries generated questions. Nothing is persisted
// until the attempt is submitted.
type GenerateQuizResponse struct {
	Questions []domain.QuizQuestion `json:"questions"`
}

// RecordQuizResultRequest represents the request body for recording an attempt.
// @Description Request body for recording a completed quiz attempt
type RecordQuizResultRequest struct {
	ModuleID       string                `json:"moduleId,omitempty"`
	QuizType       string                `json:"quizType" validate:"required"` // module, ai-generated
	Questions      []domain.QuizQuestion `json:"questions"`
	Answers        []int                 `json:"answers"`
	Score          int                   `json:"score"`
	TotalQuestions int                   `json:"totalQuestions"`
	CorrectAnswers int                   `json:"correctAnswers"`
}

// QuizResultResponse represents one recorded attempt in the API response.
type QuizResultResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"userId"`
	ModuleID       string                `json:"moduleId,omitempty"`
	QuizType       string                `json:"quizType"`
	Questions      []domain.QuizQuestion `json:"questions"`
	Answers        []int                 `json:"answers"`
	Score          int                   `json:"score"`
	TotalQuestions int                   `json:"totalQuestions"`
	CorrectAnswers int                   `json:"correctAnswers"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// UserStatsResponse is the aggregated learning snapshot.
// @Description Aggregated module and quiz statistics for the user
type UserStatsResponse struct {
	ModulesCompleted int `json:"modulesCompleted"`
	TotalModules     int `json:"totalModules"`
	AverageScore     int `json:"averageScore"`
	BestScore        int `json:"bestScore"`
	TotalQuizzes     int `json:"totalQuizzes"`
}

// NewQuizResultResponse converts a domain quiz result into its API shape.
func NewQuizResultResponse(r *domain.QuizResult) QuizResultResponse {
	return QuizResultResponse{
		ID:             r.ID,
		UserID:         r.UserID,
		ModuleID:       r.ModuleID,
		QuizType:       r.QuizType,
		Questions:      r.Questions,
		Answers:        r.Answers,
		Score:          r.Score,
		TotalQuestions: r.TotalQuestions,
		CorrectAnswers: r.CorrectAnswers,
		CreatedAt:      r.CreatedAt,
	}
}

// NewQuizResultResponses converts a slice of domain quiz results.
func NewQuizResultResponses(results []*domain.QuizResult) []QuizResultResponse {
	out := make([]QuizResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, NewQuizResultResponse(r))
	}
	return out
}
