package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/logging"
)

const maxToggleAttempts = 5

type ToggleState string

const (
	ToggleCreated ToggleState = "created"
	ToggleRemoved ToggleState = "removed"
)

type ToggleResult struct {
	State    ToggleState      `json:"state"`
	Relation *domain.Relation `json:"relation"`
}

// Active reports whether the fact exists after the toggle.
func (r *ToggleResult) Active() bool {
	return r.State == ToggleCreated
}

// RelationUsecase flips likes and subscriptions. Toggles on the same
// (actor, kind, target) are serialized in-process; across processes the
// unique key in the store decides, and a lost race is re-read rather than
// reported.
type RelationUsecase struct {
	relations domain.RelationRepository
	users     domain.UserRepository
	videos    domain.VideoRepository
	tweets    domain.TweetRepository
	comments  domain.CommentRepository
	locks     *KeyLock
	logger    *slog.Logger
}

func NewRelationUsecase(
	relations domain.RelationRepository,
	users domain.UserRepository,
	videos domain.VideoRepository,
	tweets domain.TweetRepository,
	comments domain.CommentRepository,
	logger *slog.Logger,
) *RelationUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationUsecase{
		relations: relations,
		users:     users,
		videos:    videos,
		tweets:    tweets,
		comments:  comments,
		locks:     NewKeyLock(),
		logger:    logging.WithComponent(logger, "relations"),
	}
}

func (u *RelationUsecase) Toggle(ctx context.Context, actorID uuid.UUID, kind domain.TargetKind, targetID uuid.UUID) (*ToggleResult, error) {
	if actorID == uuid.Nil || targetID == uuid.Nil {
		return nil, fmt.Errorf("%w: actor and target are required", domain.ErrInvalidInput)
	}
	if err := u.ensureTarget(ctx, kind, targetID); err != nil {
		return nil, err
	}

	key := domain.RelationKey{ActorID: actorID, Kind: kind, TargetID: targetID}
	unlock, err := u.locks.Lock(ctx, key.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	defer unlock()

	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		removed, err := u.relations.Delete(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("toggle %s: %w", key, err)
		}
		if removed {
			return &ToggleResult{State: ToggleRemoved}, nil
		}

		relation := &domain.Relation{ActorID: actorID, TargetKind: kind, TargetID: targetID}
		err = u.relations.Create(ctx, relation)
		if err == nil {
			return &ToggleResult{State: ToggleCreated, Relation: relation}, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("toggle %s: %w", key, err)
		}
		u.logger.Debug("toggle lost insert race, re-reading", "key", key.String(), "attempt", attempt)
	}

	return nil, fmt.Errorf("toggle %s: %w: contention did not settle", key, domain.ErrTransient)
}

func (u *RelationUsecase) ToggleVideoLike(ctx context.Context, actorID, videoID uuid.UUID) (*ToggleResult, error) {
	return u.Toggle(ctx, actorID, domain.TargetVideo, videoID)
}

func (u *RelationUsecase) ToggleCommentLike(ctx context.Context, actorID, commentID uuid.UUID) (*ToggleResult, error) {
	return u.Toggle(ctx, actorID, domain.TargetComment, commentID)
}

func (u *RelationUsecase) ToggleTweetLike(ctx context.Context, actorID, tweetID uuid.UUID) (*ToggleResult, error) {
	return u.Toggle(ctx, actorID, domain.TargetTweet, tweetID)
}

func (u *RelationUsecase) ToggleSubscription(ctx context.Context, subscriberID, channelID uuid.UUID) (*ToggleResult, error) {
	return u.Toggle(ctx, subscriberID, domain.TargetChannel, channelID)
}

func (u *RelationUsecase) ensureTarget(ctx context.Context, kind domain.TargetKind, id uuid.UUID) error {
	var (
		found bool
		err   error
	)
	switch kind {
	case domain.TargetVideo:
		var v *domain.Video
		v, err = u.videos.GetByID(ctx, id)
		found = v != nil
	case domain.TargetComment:
		var c *domain.Comment
		c, err = u.comments.GetByID(ctx, id)
		found = c != nil
	case domain.TargetTweet:
		var t *domain.Tweet
		t, err = u.tweets.GetByID(ctx, id)
		found = t != nil
	case domain.TargetChannel:
		var usr *domain.User
		usr, err = u.users.GetByID(ctx, id)
		found = usr != nil
	default:
		return fmt.Errorf("%w: unknown target kind %q", domain.ErrInvalidInput, kind)
	}
	if err != nil {
		return fmt.Errorf("load %s target: %w", kind, err)
	}
	if !found {
		if kind == domain.TargetChannel {
			return ErrChannelNotFound
		}
		return fmt.Errorf("%w: %s %s", ErrTargetNotFound, kind, id)
	}
	return nil
}
