package domain

//go:generate mockgen -source=user.go -destination=../mocks/user_repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Avatar         string     `json:"avatar,omitempty"`
	CoverImage     string     `json:"cover_image,omitempty"`
	PasswordHash   string     `json:"-"`
	RefreshTokenID *uuid.UUID `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Sanitized returns a copy of the user without the password verifier and the
// refresh token slot.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.PasswordHash = ""
	clean.RefreshTokenID = nil
	return &clean
}

// UserRepository returns (nil, nil) from the lookup methods when no user matches.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
