package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Orderings accepted by VideoFilter.SortBy.
const (
	VideoSortCreatedAt = "created_at"
	VideoSortViews     = "views"
	VideoSortDuration  = "duration"
	VideoSortTitle     = "title"
)

// VideoFilter selects one page of videos. Unpublished videos are visible to
// their owner (ViewerID) only. A nil OwnerID spans every channel.
type VideoFilter struct {
	Query     string
	OwnerID   uuid.UUID
	ViewerID  uuid.UUID
	SortBy    string
	Ascending bool
	Offset    int
	Limit     int
}

// ChannelTotals is the video-side half of channel statistics.
type ChannelTotals struct {
	VideoCount int
	TotalViews int64
}

type VideoRepository interface {
	Create(ctx context.Context, video *Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Video, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	ChannelTotals(ctx context.Context, ownerID uuid.UUID) (ChannelTotals, error)
	// List returns the requested page and the number of videos matching the filter.
	List(ctx context.Context, filter VideoFilter) ([]*Video, int, error)
	// TogglePublished flips is_published in one write and returns the updated row.
	TogglePublished(ctx context.Context, id uuid.UUID) (*Video, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tweet, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Tweet, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	// ListByVideo pages through a video's comments, newest first, and reports the total.
	ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]*Comment, int, error)
}
