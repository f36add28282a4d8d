package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

type AuthEventRepository struct {
	conn
}

func NewAuthEventRepository(db DB) *AuthEventRepository {
	return &AuthEventRepository{conn: newConn(db, 0)}
}

func (r *AuthEventRepository) Create(ctx context.Context, event *domain.AuthEvent) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()

	query := `
		INSERT INTO auth_events (id, user_id, kind, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.UserID, event.Kind, event.IPAddress, event.UserAgent, event.CreatedAt,
	)
	return classify("create auth event", err)
}

func (r *AuthEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AuthEvent, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, kind, ip_address, user_agent, created_at
		FROM auth_events
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, classify("list auth events", err)
	}
	defer rows.Close()

	events := make([]*domain.AuthEvent, 0)
	for rows.Next() {
		e := &domain.AuthEvent{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.Kind, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, classify("scan auth event", err)
		}
		events = append(events, e)
	}
	return events, classify("list auth events", rows.Err())
}
