package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	AuthEventLogin         = "login"
	AuthEventRefresh       = "refresh"
	AuthEventLogout        = "logout"
	AuthEventReuseDetected = "reuse_detected"
)

type AuthEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthEventRepository interface {
	Create(ctx context.Context, event *AuthEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*AuthEvent, error)
}
