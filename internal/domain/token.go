package domain

//go:generate mockgen -source=token.go -destination=../mocks/token_repository_mock.go -package=mocks

import (
	"context"

	"github.com/google/uuid"
)

// RefreshTokenRepository manages the single refresh token slot stored on each
// user. Store and Clear overwrite the slot unconditionally; CompareAndSwap only
// writes when the slot still holds expected and reports whether it did.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, tokenID uuid.UUID) error
	CompareAndSwap(ctx context.Context, userID, expected, next uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}
