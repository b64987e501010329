package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID           string         `db:"id"` // ULID
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"` // NULL for OAuth-only accounts
	GoogleID     sql.NullString `db:"google_id"`
	FullName     sql.NullString `db:"full_name"`
	AvatarURL    sql.NullString `db:"avatar_url"`
	IsPremium    bool           `db:"is_premium"`

	// Google provider tokens, AES-GCM encrypted before storage.
	EncryptedAccessToken  sql.NullString `db:"encrypted_access_token"`
	EncryptedRefreshToken sql.NullString `db:"encrypted_refresh_token"`
	TokenExpiresAt        sql.NullTime   `db:"token_expires_at"`

	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
	DeletedAt sql.NullTime `db:"deleted_at"` // soft delete
}
