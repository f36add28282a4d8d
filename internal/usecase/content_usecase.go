package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

type CreateVideoInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoURL     string  `json:"video_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Duration     float64 `json:"duration"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// ListVideosInput mirrors the query string of the video listing.
type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string
	OwnerID  uuid.UUID
}

type VideoPage struct {
	Videos     []*domain.Video `json:"videos"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type CommentPage struct {
	Comments      []*domain.Comment `json:"comments"`
	TotalComments int               `json:"total_comments"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
}

// ContentUsecase is the thin surface over videos, tweets and comments that
// gives likes and channel stats something to point at.
type ContentUsecase struct {
	videos   domain.VideoRepository
	tweets   domain.TweetRepository
	comments domain.CommentRepository
	users    domain.UserRepository
}

func NewContentUsecase(videos domain.VideoRepository, tweets domain.TweetRepository, comments domain.CommentRepository, users domain.UserRepository) *ContentUsecase {
	return &ContentUsecase{videos: videos, tweets: tweets, comments: comments, users: users}
}

// pageBounds clamps a 1-based page request and returns the row offset.
func pageBounds(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

func (u *ContentUsecase) CreateVideo(ctx context.Context, ownerID uuid.UUID, input CreateVideoInput) (*domain.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", domain.ErrInvalidInput)
	}

	video := &domain.Video{
		OwnerID:      ownerID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		VideoURL:     input.VideoURL,
		ThumbnailURL: input.ThumbnailURL,
		Duration:     input.Duration,
		IsPublished:  true,
	}
	if err := u.videos.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return video, nil
}

// visibleVideo loads a video the viewer may see. Unpublished videos exist
// for their owner only.
func (u *ContentUsecase) visibleVideo(ctx context.Context, viewerID, videoID uuid.UUID) (*domain.Video, error) {
	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if video == nil || (!video.IsPublished && video.OwnerID != viewerID) {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// WatchVideo counts a view and returns the updated video.
func (u *ContentUsecase) WatchVideo(ctx context.Context, viewerID, videoID uuid.UUID) (*domain.Video, error) {
	if _, err := u.visibleVideo(ctx, viewerID, videoID); err != nil {
		return nil, err
	}
	if err := u.videos.IncrementViews(ctx, videoID); err != nil {
		if isNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("count view: %w", err)
	}
	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// DeleteVideo removes the video only. Likes pointing at it are left in place
// and drop out of listings through the join.
func (u *ContentUsecase) DeleteVideo(ctx context.Context, actorID, videoID uuid.UUID) error {
	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("load video: %w", err)
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if video.OwnerID != actorID {
		return ErrForbidden
	}
	if err := u.videos.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

// TogglePublish flips the video's visibility. Only the owner may do it.
func (u *ContentUsecase) TogglePublish(ctx context.Context, actorID, videoID uuid.UUID) (*domain.Video, error) {
	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	if video.OwnerID != actorID {
		return nil, ErrForbidden
	}

	updated, err := u.videos.TogglePublished(ctx, videoID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("toggle publish: %w", err)
	}
	return updated, nil
}

func (u *ContentUsecase) ListVideos(ctx context.Context, viewerID uuid.UUID, input ListVideosInput) (*VideoPage, error) {
	sortBy := strings.TrimSpace(input.SortBy)
	switch sortBy {
	case "":
		sortBy = domain.VideoSortCreatedAt
	case domain.VideoSortCreatedAt, domain.VideoSortViews, domain.VideoSortDuration, domain.VideoSortTitle:
	default:
		return nil, fmt.Errorf("%w: cannot sort by %q", domain.ErrInvalidInput, sortBy)
	}

	var ascending bool
	switch strings.ToLower(strings.TrimSpace(input.SortType)) {
	case "asc", "1":
		ascending = true
	case "", "desc", "-1":
	default:
		return nil, fmt.Errorf("%w: sort type must be asc or desc", domain.ErrInvalidInput)
	}

	page, limit, offset := pageBounds(input.Page, input.Limit)
	videos, total, err := u.videos.List(ctx, domain.VideoFilter{
		Query:     input.Query,
		OwnerID:   input.OwnerID,
		ViewerID:  viewerID,
		SortBy:    sortBy,
		Ascending: ascending,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}

	return &VideoPage{
		Videos:     videos,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// VideoComments pages through a video's comments, newest first.
func (u *ContentUsecase) VideoComments(ctx context.Context, viewerID, videoID uuid.UUID, page, limit int) (*CommentPage, error) {
	if _, err := u.visibleVideo(ctx, viewerID, videoID); err != nil {
		return nil, err
	}

	page, limit, offset := pageBounds(page, limit)
	comments, total, err := u.comments.ListByVideo(ctx, videoID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return &CommentPage{Comments: comments, TotalComments: total, Page: page, Limit: limit}, nil
}

func (u *ContentUsecase) UserTweets(ctx context.Context, userID uuid.UUID) ([]*domain.Tweet, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	tweets, err := u.tweets.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tweets: %w", err)
	}
	return tweets, nil
}

func (u *ContentUsecase) CreateTweet(ctx context.Context, ownerID uuid.UUID, content string) (*domain.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	tweet := &domain.Tweet{OwnerID: ownerID, Content: content}
	if err := u.tweets.Create(ctx, tweet); err != nil {
		return nil, fmt.Errorf("create tweet: %w", err)
	}
	return tweet, nil
}

func (u *ContentUsecase) CreateComment(ctx context.Context, ownerID, videoID uuid.UUID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if _, err := u.visibleVideo(ctx, ownerID, videoID); err != nil {
		return nil, err
	}
	comment := &domain.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}
