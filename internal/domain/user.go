package domain

import (
	"context"
	"time"
)

// User represents a domain user object
type User struct {
	ID           string
	Email        string
	PasswordHash string // empty for OAuth-only accounts
	GoogleID     string // empty for password accounts
	FullName     string
	AvatarURL    string
	IsPremium    bool

	// Google provider tokens, stored AES-GCM encrypted.
	EncryptedAccessToken  string
	EncryptedRefreshToken string
	TokenExpiresAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewUser creates a new User instance
func NewUser(email string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	if u.PasswordHash == "" && u.GoogleID == "" {
		return NewInvalidInputError("user must have a password or a linked Google account")
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
