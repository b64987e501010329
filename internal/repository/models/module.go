package models

import (
	"database/sql"
	"time"
)

// LearningModule represents a row of the learning_modules table.
// Content holds the structured lesson body as jsonb.
type LearningModule struct {
	ID            string    `db:"id"` // ULID
	Title         string    `db:"title"`
	Description   string    `db:"description"`
	Topic         string    `db:"topic"`
	Difficulty    string    `db:"difficulty"` // beginner, intermediate, advanced
	Content       JSONB     `db:"content"`
	EstimatedTime string    `db:"estimated_time"`
	CreatedAt     time.Time `db:"created_at"`
}

// UserProgress represents a row of the user_progress table. The table carries
// a UNIQUE (user_id, module_id) constraint backing the one-row-per-pair
// invariant.
type UserProgress struct {
	ID          string       `db:"id"` // ULID
	UserID      string       `db:"user_id"`
	ModuleID    string       `db:"module_id"`
	Progress    int          `db:"progress"` // 0-100
	Completed   bool         `db:"completed"`
	StartedAt   time.Time    `db:"started_at"`
	CompletedAt sql.NullTime `db:"completed_at"` // stamped on first completion
	UpdatedAt   time.Time    `db:"updated_at"`
}

// QuizResult represents a row of the quiz_results table. Append-only.
type QuizResult struct {
	ID             string         `db:"id"` // ULID
	UserID         string         `db:"user_id"`
	ModuleID       sql.NullString `db:"module_id"` // NULL for ai-generated quizzes
	QuizType       string         `db:"quiz_type"` // module, ai-generated
	Questions      JSONB          `db:"questions"`
	Answers        JSONB          `db:"answers"`
	Score          int            `db:"score"` // percentage 0-100
	TotalQuestions int            `db:"total_questions"`
	CorrectAnswers int            `db:"correct_answers"`
	CreatedAt      time.Time      `db:"created_at"`
}
