package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"finlearn/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

func progressColumns() []string {
	return []string{"id", "user_id", "module_id", "progress", "completed", "started_at", "completed_at", "updated_at"}
}

func TestProgressRepository_GetByUserAndModule(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXProgressRepository(db)

		now := time.Now()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM user_progress WHERE user_id = $1 AND module_id = $2`)).
			WithArgs("user-1", "mod-1").
			WillReturnRows(sqlmock.NewRows(progressColumns()).
				AddRow("prog-1", "user-1", "mod-1", 70, false, now, nil, now))

		record, err := repo.GetByUserAndModule(ctx, "user-1", "mod-1")

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, 70, record.Progress)
		assert.Nil(t, record.CompletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("untouched module returns nil, nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXProgressRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM user_progress WHERE user_id = $1 AND module_id = $2`)).
			WithArgs("user-1", "mod-9").
			WillReturnError(sql.ErrNoRows)

		record, err := repo.GetByUserAndModule(ctx, "user-1", "mod-9")

		require.NoError(t, err)
		assert.Nil(t, record)
	})
}

func TestProgressRepository_CreateProgress(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXProgressRepository(db)

	now := time.Now()
	record := &domain.ProgressRecord{
		ID:        "prog-1",
		UserID:    "user-1",
		ModuleID:  "mod-1",
		Progress:  10,
		StartedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO user_progress`)).
		WithArgs("prog-1", "user-1", "mod-1", 10, false, now, sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateProgress(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressRepository_UpdateProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXProgressRepository(db)

		now := time.Now()
		record := &domain.ProgressRecord{
			ID:          "prog-1",
			Progress:    100,
			Completed:   true,
			CompletedAt: &now,
			UpdatedAt:   now,
		}

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_progress SET`)).
			WithArgs(100, true, sqlmock.AnyArg(), now, "prog-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateProgress(ctx, record))
	})

	t.Run("missing row surfaces ErrNoRows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewSQLXProgressRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE user_progress SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProgress(ctx, &domain.ProgressRecord{ID: "ghost"})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestProgressRepository_CountCompletedByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXProgressRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND completed = TRUE`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCompletedByUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestProgressRepository_GetByUserOnDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXProgressRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM user_progress WHERE user_id = $1 AND DATE(updated_at) = $2`)).
		WithArgs("user-1", "2026-09-01").
		WillReturnRows(sqlmock.NewRows(progressColumns()).
			AddRow("prog-1", "user-1", "mod-1", 100, true, now, now, now).
			AddRow("prog-2", "user-1", "mod-2", 20, false, now, nil, now))

	records, err := repo.GetByUserOnDate(context.Background(), "user-1", "2026-09-01")

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Completed)
	assert.False(t, records[1].Completed)
}

func TestProgressRepository_GetByUser_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXProgressRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM user_progress WHERE user_id = $1 ORDER BY updated_at DESC`)).
		WithArgs("user-1").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByUser(context.Background(), "user-1")
	assert.Error(t, err)
}
