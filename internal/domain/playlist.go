package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Videos      []*Video  `json:"videos,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistRepository stores playlists and their video membership. Membership
// is a set keyed on (playlist, video).
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Playlist, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// AddVideo reports false when the video was already a member. A missing
	// playlist or video yields ErrNotFound.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	// RemoveVideo reports whether a membership went away.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
	// ListVideos returns live member videos in the order they were added.
	ListVideos(ctx context.Context, playlistID uuid.UUID) ([]*Video, error)
}
