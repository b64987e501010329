package repository

import (
	"context"
	"fmt"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/repository/models"
	"finlearn/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizResultRepository implements domain.QuizResultRepository using sqlx.
type sqlxQuizResultRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizResultRepository creates a new instance of sqlxQuizResultRepository.
func NewSQLXQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &sqlxQuizResultRepository{db: db}
}

func toDomainQuizResult(m *models.QuizResult) (*domain.QuizResult, error) {
	if m == nil {
		return nil, nil
	}
	result := &domain.QuizResult{
		ID:             m.ID,
		UserID:         m.UserID,
		ModuleID:       m.ModuleID.String,
		QuizType:       m.QuizType,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		CorrectAnswers: m.CorrectAnswers,
		CreatedAt:      m.CreatedAt,
	}
	if err := m.Questions.UnmarshalJSONB(&result.Questions); err != nil {
		return nil, fmt.Errorf("quiz result %s has malformed questions: %w", m.ID, err)
	}
	if err := m.Answers.UnmarshalJSONB(&result.Answers); err != nil {
		return nil, fmt.Errorf("quiz result %s has malformed answers: %w", m.ID, err)
	}
	return result, nil
}

func fromDomainQuizResult(result *domain.QuizResult) (*models.QuizResult, error) {
	if result == nil {
		return nil, nil
	}
	questions, err := models.MarshalJSONB(result.Questions)
	if err != nil {
		return nil, err
	}
	answers, err := models.MarshalJSONB(result.Answers)
	if err != nil {
		return nil, err
	}
	return &models.QuizResult{
		ID:             result.ID,
		UserID:         result.UserID,
		ModuleID:       util.StringToNullString(result.ModuleID),
		QuizType:       result.QuizType,
		Questions:      questions,
		Answers:        answers,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		CorrectAnswers: result.CorrectAnswers,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// CreateResult appends a quiz attempt. Results are never updated or deleted.
func (r *sqlxQuizResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	e := GetExecutor(ctx, r.db)

	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	m, err := fromDomainQuizResult(result)
	if err != nil {
		return err
	}

	query := `INSERT INTO quiz_results (id, user_id, module_id, quiz_type, questions, answers, score, total_questions, correct_answers, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := e.ExecContext(ctx, query,
		m.ID, m.UserID, m.ModuleID, m.QuizType, m.Questions, m.Answers,
		m.Score, m.TotalQuestions, m.CorrectAnswers, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz result: %w", err)
	}
	return nil
}

// GetResultsByUser retrieves all quiz attempts of a user, newest first.
func (r *sqlxQuizResultRepository) GetResultsByUser(ctx context.Context, userID string) ([]*domain.QuizResult, error) {
	e := GetExecutor(ctx, r.db)

	var rows []models.QuizResult
	query := `SELECT * FROM quiz_results WHERE user_id = $1 ORDER BY created_at DESC`
	if err := e.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	results := make([]*domain.QuizResult, 0, len(rows))
	for i := range rows {
		result, err := toDomainQuizResult(&rows[i])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// GetQuizStatsByUser aggregates a user's quiz attempts in one query.
// A user without results gets the zero-valued stats, not an error.
func (r *sqlxQuizResultRepository) GetQuizStatsByUser(ctx context.Context, userID string) (*domain.QuizStats, error) {
	e := GetExecutor(ctx, r.db)

	var row struct {
		TotalQuizzes int `db:"total_quizzes"`
		AverageScore int `db:"average_score"`
		BestScore    int `db:"best_score"`
	}
	query := `SELECT
	            COUNT(*) AS total_quizzes,
	            COALESCE(ROUND(AVG(score)), 0)::int AS average_score,
	            COALESCE(MAX(score), 0) AS best_score
	          FROM quiz_results WHERE user_id = $1`
	if err := e.GetContext(ctx, &row, query, userID); err != nil {
		return nil, fmt.Errorf("failed to aggregate quiz stats: %w", err)
	}

	return &domain.QuizStats{
		TotalQuizzes: row.TotalQuizzes,
		AverageScore: row.AverageScore,
		BestScore:    row.BestScore,
	}, nil
}
