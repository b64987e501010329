package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finlearn/internal/domain"
	"finlearn/internal/repository/models"
	"finlearn/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxProgressRepository implements domain.ProgressRepository using sqlx.
type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a new instance of sqlxProgressRepository.
func NewSQLXProgressRepository(db *sqlx.DB) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func toDomainProgress(m *models.UserProgress) *domain.ProgressRecord {
	if m == nil {
		return nil
	}
	return &domain.ProgressRecord{
		ID:          m.ID,
		UserID:      m.UserID,
		ModuleID:    m.ModuleID,
		Progress:    m.Progress,
		Completed:   m.Completed,
		StartedAt:   m.StartedAt,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainProgress(p *domain.ProgressRecord) *models.UserProgress {
	if p == nil {
		return nil
	}
	return &models.UserProgress{
		ID:          p.ID,
		UserID:      p.UserID,
		ModuleID:    p.ModuleID,
		Progress:    p.Progress,
		Completed:   p.Completed,
		StartedAt:   p.StartedAt,
		CompletedAt: util.TimePtrToNullTime(p.CompletedAt),
		UpdatedAt:   p.UpdatedAt,
	}
}

// GetByUserAndModule retrieves the single progress row for a (user, module)
// pair. Returns (nil, nil) when the user never touched the module.
func (r *sqlxProgressRepository) GetByUserAndModule(ctx context.Context, userID, moduleID string) (*domain.ProgressRecord, error) {
	e := GetExecutor(ctx, r.db)

	var m models.UserProgress
	query := `SELECT * FROM user_progress WHERE user_id = $1 AND module_id = $2`
	if err := e.GetContext(ctx, &m, query, userID, moduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get progress for user and module: %w", err)
	}
	return toDomainProgress(&m), nil
}

// GetByUser retrieves all progress rows of a user, most recently touched first.
func (r *sqlxProgressRepository) GetByUser(ctx context.Context, userID string) ([]*domain.ProgressRecord, error) {
	e := GetExecutor(ctx, r.db)

	var rows []models.UserProgress
	query := `SELECT * FROM user_progress WHERE user_id = $1 ORDER BY updated_at DESC`
	if err := e.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list progress for user: %w", err)
	}

	records := make([]*domain.ProgressRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toDomainProgress(&rows[i]))
	}
	return records, nil
}

// CreateProgress inserts the first progress row of a (user, module) pair.
// The UNIQUE (user_id, module_id) constraint rejects a duplicate insert.
func (r *sqlxProgressRepository) CreateProgress(ctx context.Context, record *domain.ProgressRecord) error {
	e := GetExecutor(ctx, r.db)

	m := fromDomainProgress(record)
	query := `INSERT INTO user_progress (id, user_id, module_id, progress, completed, started_at, completed_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := e.ExecContext(ctx, query,
		m.ID, m.UserID, m.ModuleID, m.Progress, m.Completed, m.StartedAt, m.CompletedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}
	return nil
}

// UpdateProgress overwrites an existing progress row.
func (r *sqlxProgressRepository) UpdateProgress(ctx context.Context, record *domain.ProgressRecord) error {
	e := GetExecutor(ctx, r.db)

	m := fromDomainProgress(record)
	query := `UPDATE user_progress SET
	            progress = $1,
	            completed = $2,
	            completed_at = $3,
	            updated_at = $4
	          WHERE id = $5`

	result, err := e.ExecContext(ctx, query,
		m.Progress, m.Completed, m.CompletedAt, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountCompletedByUser returns the number of modules the user has completed.
func (r *sqlxProgressRepository) CountCompletedByUser(ctx context.Context, userID string) (int, error) {
	e := GetExecutor(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND completed = TRUE`
	if err := e.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count completed modules: %w", err)
	}
	return count, nil
}

// GetByUserOnDate retrieves the progress rows a user touched on the given
// calendar date (YYYY-MM-DD). The daily usage gate is derived from these rows
// rather than a stored counter.
func (r *sqlxProgressRepository) GetByUserOnDate(ctx context.Context, userID string, date string) ([]*domain.ProgressRecord, error) {
	e := GetExecutor(ctx, r.db)

	var rows []models.UserProgress
	query := `SELECT * FROM user_progress WHERE user_id = $1 AND DATE(updated_at) = $2`
	if err := e.SelectContext(ctx, &rows, query, userID, date); err != nil {
		return nil, fmt.Errorf("failed to list progress for user on date: %w", err)
	}

	records := make([]*domain.ProgressRecord, 0, len(rows))
	for i := range rows {
		records = append(records, toDomainProgress(&rows[i]))
	}
	return records, nil
}
