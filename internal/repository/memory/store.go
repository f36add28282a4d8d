// Package memory implements the domain repositories on top of in-process maps.
// It backs the "memory" database driver and the test suites; uniqueness rules
// match the postgres schema.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

type relationRow struct {
	relation domain.Relation
	seq      uint64
}

type playlistVideoKey struct {
	PlaylistID uuid.UUID
	VideoID    uuid.UUID
}

type Store struct {
	mu             sync.RWMutex
	seq            uint64
	users          map[uuid.UUID]*domain.User
	relations      map[domain.RelationKey]*relationRow
	videos         map[uuid.UUID]*domain.Video
	tweets         map[uuid.UUID]*domain.Tweet
	comments       map[uuid.UUID]*domain.Comment
	playlists      map[uuid.UUID]*domain.Playlist
	playlistVideos map[playlistVideoKey]uint64
	authEvents     []*domain.AuthEvent

	// insertion order of content rows, so listings stay stable when
	// timestamps collide
	order map[uuid.UUID]uint64
}

func NewStore() *Store {
	return &Store{
		users:          make(map[uuid.UUID]*domain.User),
		relations:      make(map[domain.RelationKey]*relationRow),
		videos:         make(map[uuid.UUID]*domain.Video),
		tweets:         make(map[uuid.UUID]*domain.Tweet),
		comments:       make(map[uuid.UUID]*domain.Comment),
		playlists:      make(map[uuid.UUID]*domain.Playlist),
		playlistVideos: make(map[playlistVideoKey]uint64),
		order:          make(map[uuid.UUID]uint64),
	}
}

// nextSeq must be called with mu held for writing.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) RefreshTokens() *RefreshTokenRepository { return &RefreshTokenRepository{s: s} }
func (s *Store) Relations() *RelationRepository         { return &RelationRepository{s: s} }
func (s *Store) Videos() *VideoRepository               { return &VideoRepository{s: s} }
func (s *Store) Tweets() *TweetRepository               { return &TweetRepository{s: s} }
func (s *Store) Comments() *CommentRepository           { return &CommentRepository{s: s} }
func (s *Store) Playlists() *PlaylistRepository         { return &PlaylistRepository{s: s} }
func (s *Store) AuthEvents() *AuthEventRepository       { return &AuthEventRepository{s: s} }

// checkCtx mirrors a store round-trip timing out.
func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTransient, err)
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	if u.RefreshTokenID != nil {
		id := *u.RefreshTokenID
		c.RefreshTokenID = &id
	}
	return &c
}

func cloneVideo(v *domain.Video) *domain.Video {
	c := *v
	return &c
}

// UserRepository

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Username, user.Username) || strings.EqualFold(existing.Email, user.Email) {
			return fmt.Errorf("create user: %w", domain.ErrConflict)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if u, ok := r.s.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return fmt.Errorf("update password: %w", domain.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

// RefreshTokenRepository

type RefreshTokenRepository struct{ s *Store }

func (r *RefreshTokenRepository) Store(ctx context.Context, userID, tokenID uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("store refresh token: %w", domain.ErrNotFound)
	}
	id := tokenID
	u.RefreshTokenID = &id
	return nil
}

func (r *RefreshTokenRepository) CompareAndSwap(ctx context.Context, userID, expected, next uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok || u.RefreshTokenID == nil || *u.RefreshTokenID != expected {
		return false, nil
	}
	id := next
	u.RefreshTokenID = &id
	return true, nil
}

func (r *RefreshTokenRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if u, ok := r.s.users[userID]; ok {
		u.RefreshTokenID = nil
	}
	return nil
}

// RelationRepository

type RelationRepository struct{ s *Store }

func (r *RelationRepository) Create(ctx context.Context, relation *domain.Relation) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := relation.Key()
	if _, exists := r.s.relations[key]; exists {
		return fmt.Errorf("create relation %s: %w", key, domain.ErrConflict)
	}
	if relation.ID == uuid.Nil {
		relation.ID = uuid.New()
	}
	relation.CreatedAt = time.Now()
	r.s.relations[key] = &relationRow{relation: *relation, seq: r.s.nextSeq()}
	return nil
}

func (r *RelationRepository) Delete(ctx context.Context, key domain.RelationKey) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.relations[key]; !exists {
		return false, nil
	}
	delete(r.s.relations, key)
	return true, nil
}

func (r *RelationRepository) Exists(ctx context.Context, key domain.RelationKey) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, exists := r.s.relations[key]
	return exists, nil
}

func (r *RelationRepository) CountByTarget(ctx context.Context, kind domain.TargetKind, targetID uuid.UUID) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for key := range r.s.relations {
		if key.Kind == kind && key.TargetID == targetID {
			n++
		}
	}
	return n, nil
}

func (r *RelationRepository) CountByActor(ctx context.Context, actorID uuid.UUID, kind domain.TargetKind) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for key := range r.s.relations {
		if key.Kind == kind && key.ActorID == actorID {
			n++
		}
	}
	return n, nil
}

func (r *RelationRepository) CountVideoLikesByOwner(ctx context.Context, ownerID uuid.UUID) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for key := range r.s.relations {
		if key.Kind != domain.TargetVideo {
			continue
		}
		if v, ok := r.s.videos[key.TargetID]; ok && v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// sortedRows returns matching rows ordered by insertion.
func (r *RelationRepository) sortedRows(match func(domain.RelationKey) bool) []*relationRow {
	rows := make([]*relationRow, 0)
	for key, row := range r.s.relations {
		if match(key) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	return rows
}

func (r *RelationRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*domain.ChannelMember, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.sortedRows(func(k domain.RelationKey) bool {
		return k.Kind == domain.TargetChannel && k.TargetID == channelID
	})
	return r.members(rows, func(rel domain.Relation) uuid.UUID { return rel.ActorID }), nil
}

func (r *RelationRepository) ListSubscriptions(ctx context.Context, actorID uuid.UUID) ([]*domain.ChannelMember, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.sortedRows(func(k domain.RelationKey) bool {
		return k.Kind == domain.TargetChannel && k.ActorID == actorID
	})
	return r.members(rows, func(rel domain.Relation) uuid.UUID { return rel.TargetID }), nil
}

// members joins rows against live users; rows pointing at deleted users are skipped.
func (r *RelationRepository) members(rows []*relationRow, pick func(domain.Relation) uuid.UUID) []*domain.ChannelMember {
	out := make([]*domain.ChannelMember, 0, len(rows))
	for _, row := range rows {
		u, ok := r.s.users[pick(row.relation)]
		if !ok {
			continue
		}
		out = append(out, &domain.ChannelMember{
			UserID:       u.ID,
			Username:     u.Username,
			FullName:     u.FullName,
			Avatar:       u.Avatar,
			SubscribedAt: row.relation.CreatedAt,
		})
	}
	return out
}

func (r *RelationRepository) ListLikedVideos(ctx context.Context, actorID uuid.UUID) ([]*domain.Video, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.sortedRows(func(k domain.RelationKey) bool {
		return k.Kind == domain.TargetVideo && k.ActorID == actorID
	})
	out := make([]*domain.Video, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if v, ok := r.s.videos[rows[i].relation.TargetID]; ok {
			out = append(out, cloneVideo(v))
		}
	}
	return out, nil
}

// VideoRepository

type VideoRepository struct{ s *Store }

func (r *VideoRepository) Create(ctx context.Context, video *domain.Video) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now
	r.s.videos[video.ID] = cloneVideo(video)
	r.s.order[video.ID] = r.s.nextSeq()
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if v, ok := r.s.videos[id]; ok {
		return cloneVideo(v), nil
	}
	return nil, nil
}

func (r *VideoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Video, 0)
	for _, v := range r.s.videos {
		if v.OwnerID == ownerID {
			out = append(out, cloneVideo(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.videos, id)
	for commentID, c := range r.s.comments {
		if c.VideoID == id {
			delete(r.s.comments, commentID)
		}
	}
	return nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok {
		return fmt.Errorf("increment views: %w", domain.ErrNotFound)
	}
	v.Views++
	return nil
}

func (r *VideoRepository) ChannelTotals(ctx context.Context, ownerID uuid.UUID) (domain.ChannelTotals, error) {
	if err := checkCtx(ctx); err != nil {
		return domain.ChannelTotals{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var totals domain.ChannelTotals
	for _, v := range r.s.videos {
		if v.OwnerID == ownerID {
			totals.VideoCount++
			totals.TotalViews += v.Views
		}
	}
	return totals, nil
}

func (r *VideoRepository) List(ctx context.Context, filter domain.VideoFilter) ([]*domain.Video, int, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]*domain.Video, 0)
	for _, v := range r.s.videos {
		if filter.OwnerID != uuid.Nil && v.OwnerID != filter.OwnerID {
			continue
		}
		if !v.IsPublished && v.OwnerID != filter.ViewerID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(v.Title), query) &&
			!strings.Contains(strings.ToLower(v.Description), query) {
			continue
		}
		matched = append(matched, v)
	}

	less := videoLess(filter.SortBy)
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		c := less(a, b)
		if c == 0 && isCreationSort(filter.SortBy) {
			// equal timestamps fall back to insertion order
			c = cmpOrdered(r.s.order[a.ID], r.s.order[b.ID])
		}
		if c != 0 {
			if filter.Ascending {
				return c < 0
			}
			return c > 0
		}
		return r.s.order[a.ID] < r.s.order[b.ID]
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	out := make([]*domain.Video, 0, end-start)
	for _, v := range matched[start:end] {
		out = append(out, cloneVideo(v))
	}
	return out, total, nil
}

// videoLess compares two videos on the sort column; unknown columns sort by
// creation time as the postgres repository does.
func videoLess(sortBy string) func(a, b *domain.Video) int {
	switch sortBy {
	case domain.VideoSortViews:
		return func(a, b *domain.Video) int { return cmpOrdered(a.Views, b.Views) }
	case domain.VideoSortDuration:
		return func(a, b *domain.Video) int { return cmpOrdered(a.Duration, b.Duration) }
	case domain.VideoSortTitle:
		return func(a, b *domain.Video) int { return strings.Compare(a.Title, b.Title) }
	default:
		return func(a, b *domain.Video) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

func isCreationSort(sortBy string) bool {
	switch sortBy {
	case domain.VideoSortViews, domain.VideoSortDuration, domain.VideoSortTitle:
		return false
	}
	return true
}

func cmpOrdered[T int64 | uint64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *VideoRepository) TogglePublished(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok {
		return nil, fmt.Errorf("toggle published: %w", domain.ErrNotFound)
	}
	v.IsPublished = !v.IsPublished
	v.UpdatedAt = time.Now()
	return cloneVideo(v), nil
}

// SetViews is a fixture helper for tests and local seeding.
func (r *VideoRepository) SetViews(id uuid.UUID, views int64) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.videos[id]; ok {
		v.Views = views
	}
}

// TweetRepository

type TweetRepository struct{ s *Store }

func (r *TweetRepository) Create(ctx context.Context, tweet *domain.Tweet) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if tweet.ID == uuid.Nil {
		tweet.ID = uuid.New()
	}
	tweet.CreatedAt = time.Now()
	c := *tweet
	r.s.tweets[tweet.ID] = &c
	r.s.order[tweet.ID] = r.s.nextSeq()
	return nil
}

func (r *TweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if t, ok := r.s.tweets[id]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (r *TweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Tweet, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Tweet, 0)
	for _, t := range r.s.tweets {
		if t.OwnerID == ownerID {
			c := *t
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

// CommentRepository

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now()
	c := *comment
	r.s.comments[comment.ID] = &c
	r.s.order[comment.ID] = r.s.nextSeq()
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c, ok := r.s.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, offset, limit int) ([]*domain.Comment, int, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*domain.Comment, 0)
	for _, c := range r.s.comments {
		if c.VideoID == videoID {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return r.s.order[matched[i].ID] > r.s.order[matched[j].ID] })

	total := len(matched)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	out := make([]*domain.Comment, 0, end-start)
	for _, c := range matched[start:end] {
		cp := *c
		out = append(out, &cp)
	}
	return out, total, nil
}

// AuthEventRepository

type AuthEventRepository struct{ s *Store }

func (r *AuthEventRepository) Create(ctx context.Context, event *domain.AuthEvent) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	event.CreatedAt = time.Now()
	c := *event
	r.s.authEvents = append(r.s.authEvents, &c)
	return nil
}

func (r *AuthEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AuthEvent, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	out := make([]*domain.AuthEvent, 0)
	for i := len(r.s.authEvents) - 1; i >= 0 && len(out) < limit; i-- {
		if e := r.s.authEvents[i]; e.UserID == userID {
			c := *e
			out = append(out, &c)
		}
	}
	return out, nil
}
