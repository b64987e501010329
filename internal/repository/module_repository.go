package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxModuleRepository implements domain.ModuleRepository using sqlx.
type sqlxModuleRepository struct {
	db *sqlx.DB
}

// NewSQLXModuleRepository creates a new instance of sqlxModuleRepository.
func NewSQLXModuleRepository(db *sqlx.DB) domain.ModuleRepository {
	return &sqlxModuleRepository{db: db}
}

func toDomainModule(m *models.LearningModule) (*domain.LearningModule, error) {
	if m == nil {
		return nil, nil
	}
	module := &domain.LearningModule{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Topic:         m.Topic,
		Difficulty:    m.Difficulty,
		EstimatedTime: m.EstimatedTime,
		CreatedAt:     m.CreatedAt,
	}
	if err := m.Content.UnmarshalJSONB(&module.Content); err != nil {
		return nil, fmt.Errorf("module %s has malformed content: %w", m.ID, err)
	}
	return module, nil
}

func fromDomainModule(module *domain.LearningModule) (*models.LearningModule, error) {
	if module == nil {
		return nil, nil
	}
	content, err := models.MarshalJSONB(module.Content)
	if err != nil {
		return nil, err
	}
	return &models.LearningModule{
		ID:            module.ID,
		Title:         module.Title,
		Description:   module.Description,
		Topic:         module.Topic,
		Difficulty:    module.Difficulty,
		Content:       content,
		EstimatedTime: module.EstimatedTime,
		CreatedAt:     module.CreatedAt,
	}, nil
}

// GetAllModules returns the full catalog in creation order. The ordering is
// load-bearing: recommendations truncate to the first six candidates.
func (r *sqlxModuleRepository) GetAllModules(ctx context.Context) ([]*domain.LearningModule, error) {
	e := GetExecutor(ctx, r.db)

	var rows []models.LearningModule
	query := `SELECT * FROM learning_modules ORDER BY created_at ASC, id ASC`
	if err := e.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list learning modules: %w", err)
	}

	modules := make([]*domain.LearningModule, 0, len(rows))
	for i := range rows {
		module, err := toDomainModule(&rows[i])
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	return modules, nil
}

// GetModuleByID retrieves a module by ID. Returns (nil, nil) when not found.
func (r *sqlxModuleRepository) GetModuleByID(ctx context.Context, id string) (*domain.LearningModule, error) {
	e := GetExecutor(ctx, r.db)

	var m models.LearningModule
	query := `SELECT * FROM learning_modules WHERE id = $1`
	if err := e.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module by id: %w", err)
	}
	return toDomainModule(&m)
}

// GetModuleByTitle retrieves a module by exact title. Returns (nil, nil) when
// not found. Titles are the natural key used by the idempotent seeder.
func (r *sqlxModuleRepository) GetModuleByTitle(ctx context.Context, title string) (*domain.LearningModule, error) {
	e := GetExecutor(ctx, r.db)

	var m models.LearningModule
	query := `SELECT * FROM learning_modules WHERE title = $1`
	if err := e.GetContext(ctx, &m, query, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module by title: %w", err)
	}
	return toDomainModule(&m)
}

// CountModules returns the catalog-wide module count.
func (r *sqlxModuleRepository) CountModules(ctx context.Context) (int, error) {
	e := GetExecutor(ctx, r.db)

	var count int
	query := `SELECT COUNT(*) FROM learning_modules`
	if err := e.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("failed to count learning modules: %w", err)
	}
	return count, nil
}

// SaveModule persists a new learning module.
func (r *sqlxModuleRepository) SaveModule(ctx context.Context, module *domain.LearningModule) error {
	e := GetExecutor(ctx, r.db)

	if module.CreatedAt.IsZero() {
		module.CreatedAt = time.Now()
	}
	m, err := fromDomainModule(module)
	if err != nil {
		return err
	}

	query := `INSERT INTO learning_modules (id, title, description, topic, difficulty, content, estimated_time, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := e.ExecContext(ctx, query,
		m.ID, m.Title, m.Description, m.Topic, m.Difficulty, m.Content, m.EstimatedTime, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save learning module: %w", err)
	}
	return nil
}

// UpdateModule overwrites the mutable fields of an existing module.
func (r *sqlxModuleRepository) UpdateModule(ctx context.Context, module *domain.LearningModule) error {
	e := GetExecutor(ctx, r.db)

	m, err := fromDomainModule(module)
	if err != nil {
		return err
	}

	query := `UPDATE learning_modules SET
	            description = $1,
	            topic = $2,
	            difficulty = $3,
	            content = $4,
	            estimated_time = $5
	          WHERE id = $6`

	result, err := e.ExecContext(ctx, query,
		m.Description, m.Topic, m.Difficulty, m.Content, m.EstimatedTime, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update learning module: %w", err)
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
