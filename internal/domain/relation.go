package domain

//go:generate mockgen -source=relation.go -destination=../mocks/relation_repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
	TargetTweet   TargetKind = "tweet"
	TargetChannel TargetKind = "channel"
)

func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(s); k {
	case TargetVideo, TargetComment, TargetTweet, TargetChannel:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown target kind %q", ErrInvalidInput, s)
}

// RelationKey identifies a relationship fact. At most one Relation exists per key.
type RelationKey struct {
	ActorID  uuid.UUID
	Kind     TargetKind
	TargetID uuid.UUID
}

func (k RelationKey) String() string {
	return k.ActorID.String() + ":" + string(k.Kind) + ":" + k.TargetID.String()
}

type Relation struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    uuid.UUID  `json:"actor_id"`
	TargetKind TargetKind `json:"target_kind"`
	TargetID   uuid.UUID  `json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (r *Relation) Key() RelationKey {
	return RelationKey{ActorID: r.ActorID, Kind: r.TargetKind, TargetID: r.TargetID}
}

// ChannelMember is one side of a subscription joined with the user record.
type ChannelMember struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// RelationRepository stores relationship facts.
//
// Create fails with ErrConflict when a fact with the same key already exists.
// Delete reports whether a fact was removed.
type RelationRepository interface {
	Create(ctx context.Context, relation *Relation) error
	Delete(ctx context.Context, key RelationKey) (bool, error)
	Exists(ctx context.Context, key RelationKey) (bool, error)
	CountByTarget(ctx context.Context, kind TargetKind, targetID uuid.UUID) (int, error)
	CountByActor(ctx context.Context, actorID uuid.UUID, kind TargetKind) (int, error)
	CountVideoLikesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*ChannelMember, error)
	ListSubscriptions(ctx context.Context, actorID uuid.UUID) ([]*ChannelMember, error)
	ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*Video, error)
}
