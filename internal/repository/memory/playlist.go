package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

type PlaylistRepository struct{ s *Store }

func clonePlaylist(p *domain.Playlist) *domain.Playlist {
	c := *p
	c.Videos = nil
	return &c
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[playlist.OwnerID]; !ok {
		return fmt.Errorf("create playlist: %w", domain.ErrNotFound)
	}
	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now
	r.s.playlists[playlist.ID] = clonePlaylist(playlist)
	r.s.order[playlist.ID] = r.s.nextSeq()
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.playlists[id]; ok {
		return clonePlaylist(p), nil
	}
	return nil, nil
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Playlist, 0)
	for _, p := range r.s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, clonePlaylist(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.order[out[i].ID] > r.s.order[out[j].ID] })
	return out, nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.playlists, id)
	for key := range r.s.playlistVideos {
		if key.PlaylistID == id {
			delete(r.s.playlistVideos, key)
		}
	}
	return nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.playlists[playlistID]; !ok {
		return false, fmt.Errorf("add playlist video: %w", domain.ErrNotFound)
	}
	if _, ok := r.s.videos[videoID]; !ok {
		return false, fmt.Errorf("add playlist video: %w", domain.ErrNotFound)
	}
	key := playlistVideoKey{PlaylistID: playlistID, VideoID: videoID}
	if _, ok := r.s.playlistVideos[key]; ok {
		return false, nil
	}
	r.s.playlistVideos[key] = r.s.nextSeq()
	return true, nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := playlistVideoKey{PlaylistID: playlistID, VideoID: videoID}
	if _, ok := r.s.playlistVideos[key]; !ok {
		return false, nil
	}
	delete(r.s.playlistVideos, key)
	return true, nil
}

func (r *PlaylistRepository) ListVideos(ctx context.Context, playlistID uuid.UUID) ([]*domain.Video, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type member struct {
		video *domain.Video
		seq   uint64
	}
	members := make([]member, 0)
	for key, seq := range r.s.playlistVideos {
		if key.PlaylistID != playlistID {
			continue
		}
		if v, ok := r.s.videos[key.VideoID]; ok {
			members = append(members, member{video: v, seq: seq})
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].seq < members[j].seq })

	out := make([]*domain.Video, 0, len(members))
	for _, m := range members {
		out = append(out, cloneVideo(m.video))
	}
	return out, nil
}
