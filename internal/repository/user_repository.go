package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finlearn/internal/domain"
	"finlearn/internal/repository/models"
	"finlearn/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:                    m.ID,
		Email:                 m.Email,
		PasswordHash:          m.PasswordHash.String,
		GoogleID:              m.GoogleID.String,
		FullName:              m.FullName.String,
		AvatarURL:             m.AvatarURL.String,
		IsPremium:             m.IsPremium,
		EncryptedAccessToken:  m.EncryptedAccessToken.String,
		EncryptedRefreshToken: m.EncryptedRefreshToken.String,
		TokenExpiresAt:        util.NullTimeToPtr(m.TokenExpiresAt),
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
		DeletedAt:             util.NullTimeToPtr(m.DeletedAt),
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:                    u.ID,
		Email:                 u.Email,
		PasswordHash:          util.StringToNullString(u.PasswordHash),
		GoogleID:              util.StringToNullString(u.GoogleID),
		FullName:              util.StringToNullString(u.FullName),
		AvatarURL:             util.StringToNullString(u.AvatarURL),
		IsPremium:             u.IsPremium,
		EncryptedAccessToken:  util.StringToNullString(u.EncryptedAccessToken),
		EncryptedRefreshToken: util.StringToNullString(u.EncryptedRefreshToken),
		TokenExpiresAt:        util.TimePtrToNullTime(u.TokenExpiresAt),
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
		DeletedAt:             util.TimePtrToNullTime(u.DeletedAt),
	}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	e := GetExecutor(ctx, r.db)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m := fromDomainUser(user)

	query := `INSERT INTO users (id, email, password_hash, google_id, full_name, avatar_url, is_premium,
	                             encrypted_access_token, encrypted_refresh_token, token_expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := e.ExecContext(ctx, query,
		m.ID, m.Email, m.PasswordHash, m.GoogleID, m.FullName, m.AvatarURL, m.IsPremium,
		m.EncryptedAccessToken, m.EncryptedRefreshToken, m.TokenExpiresAt, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	e := GetExecutor(ctx, r.db)

	var m models.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`
	if err := e.GetContext(ctx, &m, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByGoogleID retrieves a user by their Google ID. Returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	e := GetExecutor(ctx, r.db)

	var m models.User
	query := `SELECT * FROM users WHERE google_id = $1 AND deleted_at IS NULL`
	if err := e.GetContext(ctx, &m, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by their internal ID. Returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	e := GetExecutor(ctx, r.db)

	var m models.User
	query := `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`
	if err := e.GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&m), nil
}

// UpdateUser updates profile and account fields of an existing user.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	e := GetExecutor(ctx, r.db)

	user.UpdatedAt = time.Now()
	m := fromDomainUser(user)

	query := `UPDATE users SET
	            email = $1,
	            password_hash = $2,
	            google_id = $3,
	            full_name = $4,
	            avatar_url = $5,
	            is_premium = $6,
	            encrypted_access_token = $7,
	            encrypted_refresh_token = $8,
	            token_expires_at = $9,
	            updated_at = $10
	          WHERE id = $11 AND deleted_at IS NULL`

	result, err := e.ExecContext(ctx, query,
		m.Email, m.PasswordHash, m.GoogleID, m.FullName, m.AvatarURL, m.IsPremium,
		m.EncryptedAccessToken, m.EncryptedRefreshToken, m.TokenExpiresAt, m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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
