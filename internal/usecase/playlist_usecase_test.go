package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

func videoIDs(videos []*domain.Video) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestPlaylistUsecase_MembershipIsASet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner")
	first := env.video(t, owner, "first")
	second := env.video(t, owner, "second")

	playlist, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Name: "mix", Description: "weekend"})
	require.NoError(t, err)
	assert.Empty(t, playlist.Videos)

	_, err = env.playlists.AddVideo(ctx, owner.ID, playlist.ID, first.ID)
	require.NoError(t, err)
	again, err := env.playlists.AddVideo(ctx, owner.ID, playlist.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, videoIDs(again.Videos))

	withBoth, err := env.playlists.AddVideo(ctx, owner.ID, playlist.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID, second.ID}, videoIDs(withBoth.Videos))

	removed, err := env.playlists.RemoveVideo(ctx, owner.ID, playlist.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, videoIDs(removed.Videos))

	removed, err = env.playlists.RemoveVideo(ctx, owner.ID, playlist.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, videoIDs(removed.Videos))

	require.NoError(t, env.content.DeleteVideo(ctx, owner.ID, second.ID))
	loaded, err := env.playlists.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Videos)
}

func TestPlaylistUsecase_ConcurrentAddsKeepOneMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner")
	video := env.video(t, owner, "clip")
	playlist, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Name: "mix", Description: "loop"})
	require.NoError(t, err)

	const callers = 25
	start := make(chan struct{})
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := env.playlists.AddVideo(ctx, owner.ID, playlist.ID, video.ID)
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	loaded, err := env.playlists.GetPlaylist(ctx, playlist.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{video.ID}, videoIDs(loaded.Videos))
}

func TestPlaylistUsecase_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner")
	intruder := env.register(t, "intruder")
	video := env.video(t, owner, "clip")
	playlist, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Name: "mix", Description: "loop"})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{
			name: "missing name",
			call: func() error {
				_, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Description: "x"})
				return err
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "unknown owner",
			call: func() error {
				_, err := env.playlists.CreatePlaylist(ctx, uuid.New(), CreatePlaylistInput{Name: "a", Description: "b"})
				return err
			},
			want: ErrUserNotFound,
		},
		{
			name: "add by non owner",
			call: func() error {
				_, err := env.playlists.AddVideo(ctx, intruder.ID, playlist.ID, video.ID)
				return err
			},
			want: ErrForbidden,
		},
		{
			name: "remove by non owner",
			call: func() error {
				_, err := env.playlists.RemoveVideo(ctx, intruder.ID, playlist.ID, video.ID)
				return err
			},
			want: ErrForbidden,
		},
		{
			name: "unknown video",
			call: func() error {
				_, err := env.playlists.AddVideo(ctx, owner.ID, playlist.ID, uuid.New())
				return err
			},
			want: ErrVideoNotFound,
		},
		{
			name: "unknown playlist",
			call: func() error {
				_, err := env.playlists.AddVideo(ctx, owner.ID, uuid.New(), video.ID)
				return err
			},
			want: ErrPlaylistNotFound,
		},
		{
			name: "playlists of unknown user",
			call: func() error {
				_, err := env.playlists.UserPlaylists(ctx, uuid.New())
				return err
			},
			want: ErrUserNotFound,
		},
		{
			name: "delete by non owner",
			call: func() error { return env.playlists.DeletePlaylist(ctx, intruder.ID, playlist.ID) },
			want: ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestPlaylistUsecase_DeleteAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.register(t, "owner")

	keep, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Name: "keep", Description: "a"})
	require.NoError(t, err)
	drop, err := env.playlists.CreatePlaylist(ctx, owner.ID, CreatePlaylistInput{Name: "drop", Description: "b"})
	require.NoError(t, err)

	require.NoError(t, env.playlists.DeletePlaylist(ctx, owner.ID, drop.ID))
	assert.ErrorIs(t, env.playlists.DeletePlaylist(ctx, owner.ID, drop.ID), ErrPlaylistNotFound)

	_, err = env.playlists.GetPlaylist(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrPlaylistNotFound)

	playlists, err := env.playlists.UserPlaylists(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, keep.ID, playlists[0].ID)
}
