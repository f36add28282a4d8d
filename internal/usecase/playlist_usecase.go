package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

type CreatePlaylistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistUsecase manages playlists and their video membership. Adding and
// removing a video are idempotent set operations.
type PlaylistUsecase struct {
	playlists domain.PlaylistRepository
	users     domain.UserRepository
	videos    domain.VideoRepository
}

func NewPlaylistUsecase(playlists domain.PlaylistRepository, users domain.UserRepository, videos domain.VideoRepository) *PlaylistUsecase {
	return &PlaylistUsecase{playlists: playlists, users: users, videos: videos}
}

func (u *PlaylistUsecase) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, input CreatePlaylistInput) (*domain.Playlist, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	if name == "" || description == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrInvalidInput)
	}

	playlist := &domain.Playlist{OwnerID: ownerID, Name: name, Description: description}
	if err := u.playlists.Create(ctx, playlist); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create playlist: %w", err)
	}
	playlist.Videos = []*domain.Video{}
	return playlist, nil
}

// GetPlaylist returns the playlist with its live videos.
func (u *PlaylistUsecase) GetPlaylist(ctx context.Context, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := u.load(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return u.withVideos(ctx, playlist)
}

func (u *PlaylistUsecase) UserPlaylists(ctx context.Context, userID uuid.UUID) ([]*domain.Playlist, error) {
	user, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	playlists, err := u.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	return playlists, nil
}

func (u *PlaylistUsecase) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := u.owned(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}

	video, err := u.videos.GetByID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("load video: %w", err)
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	if _, err := u.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		if isNotFound(err) {
			// the playlist or the video went away after the checks above
			return nil, u.missingMember(ctx, playlistID)
		}
		return nil, fmt.Errorf("add video: %w", err)
	}
	return u.withVideos(ctx, playlist)
}

func (u *PlaylistUsecase) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := u.owned(ctx, actorID, playlistID)
	if err != nil {
		return nil, err
	}
	if _, err := u.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, fmt.Errorf("remove video: %w", err)
	}
	return u.withVideos(ctx, playlist)
}

func (u *PlaylistUsecase) DeletePlaylist(ctx context.Context, actorID, playlistID uuid.UUID) error {
	if _, err := u.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	if err := u.playlists.Delete(ctx, playlistID); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

func (u *PlaylistUsecase) load(ctx context.Context, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := u.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("load playlist: %w", err)
	}
	if playlist == nil {
		return nil, ErrPlaylistNotFound
	}
	return playlist, nil
}

func (u *PlaylistUsecase) owned(ctx context.Context, actorID, playlistID uuid.UUID) (*domain.Playlist, error) {
	playlist, err := u.load(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return playlist, nil
}

func (u *PlaylistUsecase) withVideos(ctx context.Context, playlist *domain.Playlist) (*domain.Playlist, error) {
	videos, err := u.playlists.ListVideos(ctx, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("list playlist videos: %w", err)
	}
	playlist.Videos = videos
	return playlist, nil
}

func (u *PlaylistUsecase) missingMember(ctx context.Context, playlistID uuid.UUID) error {
	playlist, err := u.playlists.GetByID(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("load playlist: %w", err)
	}
	if playlist == nil {
		return ErrPlaylistNotFound
	}
	return ErrVideoNotFound
}
