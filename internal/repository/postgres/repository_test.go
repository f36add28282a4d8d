package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuranshBedi/Backendd/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrConflict},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrNotFound},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: domain.ErrTransient},
		{name: "connection exception", err: &pgconn.PgError{Code: "08006"}, want: domain.ErrTransient},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: domain.ErrTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify("op", tt.err), tt.want)
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		base := errors.New("syntax error")
		err := classify("op", base)
		assert.ErrorIs(t, err, base)
		assert.NotErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, domain.ErrTransient)
	})

	assert.NoError(t, classify("op", nil))
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@example.com", FullName: "Alice", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "alice", "alice@example.com", "Alice", "", "", "hash", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, r.Create(ctx, user))
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(pgxmock.AnyArg(), "alice", "alice@example.com", "Alice", "", "", "hash", pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := r.Create(ctx, user)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsername_NotFound(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	user, err := r.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(id, "new-hash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := r.UpdatePassword(context.Background(), id, "new-hash")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_CompareAndSwap(t *testing.T) {
	mock := newMock(t)
	r := NewRefreshTokenRepository(mock)
	ctx := context.Background()
	userID, current, next := uuid.New(), uuid.New(), uuid.New()

	t.Run("slot matches", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET refresh_token_id").
			WithArgs(userID, current, next).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		swapped, err := r.CompareAndSwap(ctx, userID, current, next)
		require.NoError(t, err)
		assert.True(t, swapped)
	})

	t.Run("slot already rotated", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET refresh_token_id").
			WithArgs(userID, current, next).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		swapped, err := r.CompareAndSwap(ctx, userID, current, next)
		require.NoError(t, err)
		assert.False(t, swapped)
	})

	t.Run("connection lost", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET refresh_token_id").
			WithArgs(userID, current, next).
			WillReturnError(&pgconn.PgError{Code: "08006"})

		_, err := r.CompareAndSwap(ctx, userID, current, next)
		assert.ErrorIs(t, err, domain.ErrTransient)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_StoreMissingUser(t *testing.T) {
	mock := newMock(t)
	r := NewRefreshTokenRepository(mock)
	userID, tokenID := uuid.New(), uuid.New()

	mock.ExpectExec("UPDATE users SET refresh_token_id").
		WithArgs(userID, tokenID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := r.Store(context.Background(), userID, tokenID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepository_Create(t *testing.T) {
	mock := newMock(t)
	r := NewRelationRepository(mock)
	actor, target := uuid.New(), uuid.New()

	t.Run("existing fact", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO relations").
			WithArgs(pgxmock.AnyArg(), actor, "video", target, pgxmock.AnyArg()).
			WillReturnError(pgx.ErrNoRows)

		err := r.Create(context.Background(), &domain.Relation{ActorID: actor, TargetKind: domain.TargetVideo, TargetID: target})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO relations").
			WithArgs(pgxmock.AnyArg(), actor, "channel", target, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := r.Create(context.Background(), &domain.Relation{ActorID: actor, TargetKind: domain.TargetChannel, TargetID: target})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepository_Delete(t *testing.T) {
	mock := newMock(t)
	r := NewRelationRepository(mock)
	key := domain.RelationKey{ActorID: uuid.New(), Kind: domain.TargetTweet, TargetID: uuid.New()}

	mock.ExpectExec("DELETE FROM relations").
		WithArgs(key.ActorID, "tweet", key.TargetID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM relations").
		WithArgs(key.ActorID, "tweet", key.TargetID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := r.Delete(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.Delete(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelationRepository_Counts(t *testing.T) {
	mock := newMock(t)
	r := NewRelationRepository(mock)
	ctx := context.Background()
	channel := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("channel", channel).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(channel).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	subs, err := r.CountByTarget(ctx, domain.TargetChannel, channel)
	require.NoError(t, err)
	assert.Equal(t, 3, subs)

	likes, err := r.CountVideoLikesByOwner(ctx, channel)
	require.NoError(t, err)
	assert.Equal(t, 7, likes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ChannelTotals(t *testing.T) {
	mock := newMock(t)
	r := NewVideoRepository(mock)
	owner := uuid.New()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(2, int64(150)))

	totals, err := r.ChannelTotals(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, domain.ChannelTotals{VideoCount: 2, TotalViews: 150}, totals)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_IncrementViewsMissing(t *testing.T) {
	mock := newMock(t)
	r := NewVideoRepository(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE videos SET views").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, r.IncrementViews(context.Background(), id), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListBuildsFilteredPage(t *testing.T) {
	mock := newMock(t)
	r := NewVideoRepository(mock)
	viewer, owner := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM videos WHERE \(is_published OR owner_id = \$1\) AND owner_id = \$2 AND \(title ILIKE`).
		WithArgs(viewer, owner, "go").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(`ORDER BY views ASC, id LIMIT \$4 OFFSET \$5`).
		WithArgs(viewer, owner, "go", 10, 20).
		WillReturnRows(pgxmock.NewRows(strings.Split(videoColumns, ", ")))

	videos, total, err := r.List(context.Background(), domain.VideoFilter{
		Query:     " go ",
		OwnerID:   owner,
		ViewerID:  viewer,
		SortBy:    domain.VideoSortViews,
		Ascending: true,
		Offset:    20,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	assert.Empty(t, videos)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_ListUnknownSortFallsBack(t *testing.T) {
	mock := newMock(t)
	r := NewVideoRepository(mock)
	viewer := uuid.New()

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs(viewer).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY created_at DESC, id LIMIT \$2 OFFSET \$3`).
		WithArgs(viewer, 10, 0).
		WillReturnRows(pgxmock.NewRows(strings.Split(videoColumns, ", ")))

	_, _, err := r.List(context.Background(), domain.VideoFilter{ViewerID: viewer, SortBy: "id; DROP TABLE videos", Limit: 10})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVideoRepository_TogglePublishedMissing(t *testing.T) {
	mock := newMock(t)
	r := NewVideoRepository(mock)
	id := uuid.New()

	mock.ExpectQuery("UPDATE videos SET is_published = NOT is_published").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.TogglePublished(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaylistRepository_AddVideo(t *testing.T) {
	playlist, video := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		setup     func(mock pgxmock.PgxPoolIface)
		wantAdded bool
		wantErr   error
	}{
		{
			name: "new member",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO playlist_videos").
					WithArgs(playlist, video).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
			wantAdded: true,
		},
		{
			name: "already a member",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO playlist_videos").
					WithArgs(playlist, video).
					WillReturnResult(pgxmock.NewResult("INSERT", 0))
			},
		},
		{
			name: "missing playlist or video",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("INSERT INTO playlist_videos").
					WithArgs(playlist, video).
					WillReturnError(&pgconn.PgError{Code: "23503"})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			added, err := NewPlaylistRepository(mock).AddVideo(context.Background(), playlist, video)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAdded, added)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPlaylistRepository_RemoveVideo(t *testing.T) {
	mock := newMock(t)
	r := NewPlaylistRepository(mock)
	playlist, video := uuid.New(), uuid.New()

	mock.ExpectExec("DELETE FROM playlist_videos").
		WithArgs(playlist, video).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM playlist_videos").
		WithArgs(playlist, video).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := r.RemoveVideo(context.Background(), playlist, video)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = r.RemoveVideo(context.Background(), playlist, video)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, mock.ExpectationsWereMet())
}
