package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

const defaultQueryTimeout = 5 * time.Second

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type conn struct {
	db      DB
	timeout time.Duration
}

func newConn(db DB, timeout time.Duration) conn {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return conn{db: db, timeout: timeout}
}

func (c conn) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

// Repositories groups every postgres-backed repository over one pool.
type Repositories struct {
	Users         *UserRepository
	RefreshTokens *RefreshTokenRepository
	Relations     *RelationRepository
	Videos        *VideoRepository
	Tweets        *TweetRepository
	Comments      *CommentRepository
	Playlists     *PlaylistRepository
	AuthEvents    *AuthEventRepository
}

func NewRepositories(db DB, queryTimeout time.Duration) *Repositories {
	c := newConn(db, queryTimeout)
	return &Repositories{
		Users:         &UserRepository{conn: c},
		RefreshTokens: &RefreshTokenRepository{conn: c},
		Relations:     &RelationRepository{conn: c},
		Videos:        &VideoRepository{conn: c},
		Tweets:        &TweetRepository{conn: c},
		Comments:      &CommentRepository{conn: c},
		Playlists:     &PlaylistRepository{conn: c},
		AuthEvents:    &AuthEventRepository{conn: c},
	}
}

// classify maps driver failures onto the domain error set: unique violations
// become ErrConflict, foreign key violations become ErrNotFound and connection-level or timeout failures become
// ErrTransient. Anything else is wrapped unchanged.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return fmt.Errorf("%s: %w", op, domain.ErrConflict)
		case pgErr.Code == "23503":
			return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		case pgErr.Code == "40001", pgErr.Code == "40P01", pgErr.Code == "53300",
			pgErr.Code == "57P01", pgErr.Code == "57P03", len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return fmt.Errorf("%s: %w: %v", op, domain.ErrTransient, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connectErr *pgconn.ConnectError
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || errors.As(err, &connectErr) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrTransient, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
