package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

// StatsUsecase derives channel aggregates from relation facts and videos.
// Nothing is cached; every call reads the store.
type StatsUsecase struct {
	relations domain.RelationRepository
	users     domain.UserRepository
	videos    domain.VideoRepository
}

func NewStatsUsecase(relations domain.RelationRepository, users domain.UserRepository, videos domain.VideoRepository) *StatsUsecase {
	return &StatsUsecase{relations: relations, users: users, videos: videos}
}

func (u *StatsUsecase) requireChannel(ctx context.Context, channelID uuid.UUID) (*domain.User, error) {
	user, err := u.users.GetByID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	if user == nil {
		return nil, ErrChannelNotFound
	}
	return user, nil
}

func (u *StatsUsecase) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	return nil
}

func (u *StatsUsecase) ChannelStats(ctx context.Context, channelID uuid.UUID) (*domain.ChannelStats, error) {
	if _, err := u.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}

	stats := &domain.ChannelStats{ChannelID: channelID}
	var totals domain.ChannelTotals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = u.videos.ChannelTotals(gctx, channelID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.SubscriberCount, err = u.relations.CountByTarget(gctx, domain.TargetChannel, channelID)
		return err
	})
	g.Go(func() error {
		var err error
		stats.LikeCount, err = u.relations.CountVideoLikesByOwner(gctx, channelID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("channel stats: %w", err)
	}

	stats.VideoCount = totals.VideoCount
	stats.TotalViews = totals.TotalViews
	if totals.VideoCount > 0 {
		stats.AverageViewsPerVideo = float64(totals.TotalViews) / float64(totals.VideoCount)
	}
	return stats, nil
}

func (u *StatsUsecase) Subscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.ChannelMember, error) {
	if _, err := u.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}
	members, err := u.relations.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return members, nil
}

func (u *StatsUsecase) Subscriptions(ctx context.Context, actorID uuid.UUID) ([]*domain.ChannelMember, error) {
	if err := u.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	members, err := u.relations.ListSubscriptions(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return members, nil
}

func (u *StatsUsecase) LikedVideos(ctx context.Context, actorID uuid.UUID) ([]*domain.Video, error) {
	if err := u.requireUser(ctx, actorID); err != nil {
		return nil, err
	}
	videos, err := u.relations.ListLikedVideos(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("list liked videos: %w", err)
	}
	return videos, nil
}

func (u *StatsUsecase) ChannelVideos(ctx context.Context, channelID uuid.UUID) ([]*domain.Video, error) {
	if _, err := u.requireChannel(ctx, channelID); err != nil {
		return nil, err
	}
	videos, err := u.videos.ListByOwner(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("list channel videos: %w", err)
	}
	return videos, nil
}

// ChannelProfile looks the channel up by username. IsSubscribed is reported
// from the viewer's point of view; a nil viewer is never subscribed.
func (u *StatsUsecase) ChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("%w: username is missing", domain.ErrInvalidInput)
	}

	channel, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	if channel == nil {
		return nil, ErrChannelNotFound
	}

	profile := &domain.ChannelProfile{
		ID:         channel.ID,
		Username:   channel.Username,
		FullName:   channel.FullName,
		Email:      channel.Email,
		Avatar:     channel.Avatar,
		CoverImage: channel.CoverImage,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile.SubscriberCount, err = u.relations.CountByTarget(gctx, domain.TargetChannel, channel.ID)
		return err
	})
	g.Go(func() error {
		var err error
		profile.ChannelsSubscribedToCount, err = u.relations.CountByActor(gctx, channel.ID, domain.TargetChannel)
		return err
	})
	if viewerID != uuid.Nil {
		g.Go(func() error {
			var err error
			profile.IsSubscribed, err = u.relations.Exists(gctx, domain.RelationKey{
				ActorID:  viewerID,
				Kind:     domain.TargetChannel,
				TargetID: channel.ID,
			})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("channel profile: %w", err)
	}
	return profile, nil
}
