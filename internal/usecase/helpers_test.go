package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/repository/memory"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:        "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	}
}

type testEnv struct {
	store     *memory.Store
	tokens    *TokenUsecase
	auth      *AuthUsecase
	relations *RelationUsecase
	stats     *StatsUsecase
	content   *ContentUsecase
	playlists *PlaylistUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	tokens := NewTokenUsecase(store.RefreshTokens(), store.Users(), testJWTConfig())
	return &testEnv{
		store:     store,
		tokens:    tokens,
		auth:      NewAuthUsecase(store.Users(), store.AuthEvents(), tokens, nil),
		relations: NewRelationUsecase(store.Relations(), store.Users(), store.Videos(), store.Tweets(), store.Comments(), nil),
		stats:     NewStatsUsecase(store.Relations(), store.Users(), store.Videos()),
		content:   NewContentUsecase(store.Videos(), store.Tweets(), store.Comments(), store.Users()),
		playlists: NewPlaylistUsecase(store.Playlists(), store.Users(), store.Videos()),
	}
}

func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) video(t *testing.T, owner *domain.User, title string) *domain.Video {
	t.Helper()
	v, err := e.content.CreateVideo(context.Background(), owner.ID, CreateVideoInput{Title: title})
	require.NoError(t, err)
	return v
}
