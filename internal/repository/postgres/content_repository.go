package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

const (
	videoColumns         = `id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at`
	videoColumnsPrefixed = `v.id, v.owner_id, v.title, v.description, v.video_url, v.thumbnail_url, v.duration, v.views, v.is_published, v.created_at, v.updated_at`
)

func scanVideo(row pgx.Row) (*domain.Video, error) {
	v := &domain.Video{}
	err := row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Title,
		&v.Description,
		&v.VideoURL,
		&v.ThumbnailURL,
		&v.Duration,
		&v.Views,
		&v.IsPublished,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("scan video", err)
	}
	return v, nil
}

func collectVideos(rows pgx.Rows) ([]*domain.Video, error) {
	videos := make([]*domain.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, classify("read videos", rows.Err())
}

type VideoRepository struct {
	conn
}

func NewVideoRepository(db DB) *VideoRepository {
	return &VideoRepository{conn: newConn(db, 0)}
}

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration, views, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := r.db.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.Duration,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return classify("create video", err)
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return scanVideo(r.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
}

func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+videoColumns+` FROM videos WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, classify("list videos", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	return classify("delete video", err)
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return classify("increment views", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("increment views: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *VideoRepository) ChannelTotals(ctx context.Context, ownerID uuid.UUID) (domain.ChannelTotals, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var totals domain.ChannelTotals
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1`, ownerID,
	).Scan(&totals.VideoCount, &totals.TotalViews)
	if err != nil {
		return domain.ChannelTotals{}, classify("channel totals", err)
	}
	return totals, nil
}

// videoSortColumns whitelists ORDER BY targets; anything else sorts by creation time.
var videoSortColumns = map[string]string{
	domain.VideoSortCreatedAt: "created_at",
	domain.VideoSortViews:     "views",
	domain.VideoSortDuration:  "duration",
	domain.VideoSortTitle:     "title",
}

func videoFilterClause(filter domain.VideoFilter) (string, []interface{}) {
	args := []interface{}{filter.ViewerID}
	conditions := []string{"(is_published OR owner_id = $1)"}

	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, q)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *VideoRepository) List(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	where, args := videoFilterClause(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM videos`+where, args...).Scan(&total); err != nil {
		return nil, 0, classify("count videos", err)
	}

	column, ok := videoSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}

	query := `SELECT ` + videoColumns + ` FROM videos` + where +
		fmt.Sprintf(" ORDER BY %s %s, id LIMIT $%d OFFSET $%d", column, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, classify("list videos", err)
	}
	defer rows.Close()

	videos, err := collectVideos(rows)
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *VideoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	video, err := scanVideo(r.db.QueryRow(ctx,
		`UPDATE videos SET is_published = NOT is_published, updated_at = NOW() WHERE id = $1 RETURNING `+videoColumns, id))
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, fmt.Errorf("toggle published: %w", domain.ErrNotFound)
	}
	return video, nil
}

type TweetRepository struct {
	conn
}

func NewTweetRepository(db DB) *TweetRepository {
	return &TweetRepository{conn: newConn(db, 0)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}
	tweet.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx,
		`INSERT INTO tweets (id, owner_id, content, created_at) VALUES ($1, $2, $3, $4)`,
		tweet.ID, tweet.OwnerID, tweet.Content, tweet.CreatedAt,
	)
	return classify("create tweet", err)
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	t := &domain.Tweet{}
	err := r.db.QueryRow(ctx, `SELECT id, owner_id, content, created_at FROM tweets WHERE id = $1`, id).
		Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get tweet", err)
	}
	return t, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tweet, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, content, created_at FROM tweets WHERE owner_id = $1 ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, classify("list tweets", err)
	}
	defer rows.Close()

	tweets := make([]*domain.Tweet, 0)
	for rows.Next() {
		t := &domain.Tweet{}
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt); err != nil {
			return nil, classify("scan tweet", err)
		}
		tweets = append(tweets, t)
	}
	return tweets, classify("read tweets", rows.Err())
}

type CommentRepository struct {
	conn
}

func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{conn: newConn(db, 0)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, video_id, owner_id, content, created_at) VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content, comment.CreatedAt,
	)
	return classify("create comment", err)
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	c := &domain.Comment{}
	err := r.db.QueryRow(ctx, `SELECT id, video_id, owner_id, content, created_at FROM comments WHERE id = $1`, id).
		Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("get comment", err)
	}
	return c, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]*domain.Comment, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
		return nil, 0, classify("count comments", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, video_id, owner_id, content, created_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, videoID, limit, offset)
	if err != nil {
		return nil, 0, classify("list comments", err)
	}
	defer rows.Close()

	comments := make([]*domain.Comment, 0)
	for rows.Next() {
		c := &domain.Comment{}
		if err := rows.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt); err != nil {
			return nil, 0, classify("scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("read comments", err)
	}
	return comments, total, nil
}
