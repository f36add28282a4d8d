package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

// RefreshTokenRepository keeps the current refresh token id in
// users.refresh_token_id. A NULL slot means no live session.
type RefreshTokenRepository struct {
	conn
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{conn: newConn(db, 0)}
}

func (r *RefreshTokenRepository) Store(ctx context.Context, userID, tokenID uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET refresh_token_id = $2 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, userID, tokenID)
	if err != nil {
		return classify("store refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store refresh token: %w", domain.ErrNotFound)
	}
	return nil
}

// CompareAndSwap is a single conditional UPDATE, so two concurrent rotations
// of the same token cannot both succeed.
func (r *RefreshTokenRepository) CompareAndSwap(ctx context.Context, userID, expected, next uuid.UUID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET refresh_token_id = $3 WHERE id = $1 AND refresh_token_id = $2`
	tag, err := r.db.Exec(ctx, query, userID, expected, next)
	if err != nil {
		return false, classify("rotate refresh token", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RefreshTokenRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users SET refresh_token_id = NULL WHERE id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return classify("clear refresh token", err)
}
