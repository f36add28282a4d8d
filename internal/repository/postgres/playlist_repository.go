package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

type PlaylistRepository struct {
	conn
}

func NewPlaylistRepository(db DB) *PlaylistRepository {
	return &PlaylistRepository{conn: newConn(db, 0)}
}

func scanPlaylist(row pgx.Row) (*domain.Playlist, error) {
	p := &domain.Playlist{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("scan playlist", err)
	}
	return p, nil
}

func (r *PlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if playlist.ID == uuid.Nil {
		playlist.ID = uuid.New()
	}
	now := time.Now()
	playlist.CreatedAt = now
	playlist.UpdatedAt = now

	_, err := r.db.Exec(ctx, `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description, playlist.CreatedAt, playlist.UpdatedAt)
	return classify("create playlist", err)
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return scanPlaylist(r.db.QueryRow(ctx, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id))
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Playlist, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE owner_id = $1 ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, classify("list playlists", err)
	}
	defer rows.Close()

	playlists := make([]*domain.Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, classify("read playlists", rows.Err())
}

func (r *PlaylistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	return classify("delete playlist", err)
}

// AddVideo relies on the (playlist_id, video_id) primary key so concurrent
// adds of the same video leave one row.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id, added_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`, playlistID, videoID)
	if err != nil {
		return false, classify("add playlist video", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`, playlistID, videoID)
	if err != nil {
		return false, classify("remove playlist video", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PlaylistRepository) ListVideos(ctx context.Context, playlistID uuid.UUID) ([]*domain.Video, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.added_at, v.id
	`, videoColumnsPrefixed), playlistID)
	if err != nil {
		return nil, classify("list playlist videos", err)
	}
	defer rows.Close()
	return collectVideos(rows)
}
