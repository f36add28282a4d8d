package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/repository/memory"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtCfg := config.JWTConfig{
		Secret:        "http-access-secret",
		RefreshSecret: "http-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()

	tokens := usecase.NewTokenUsecase(store.RefreshTokens(), store.Users(), &jwtCfg)
	auth := usecase.NewAuthUsecase(store.Users(), store.AuthEvents(), tokens, logger)
	relations := usecase.NewRelationUsecase(store.Relations(), store.Users(), store.Videos(), store.Tweets(), store.Comments(), logger)
	stats := usecase.NewStatsUsecase(store.Relations(), store.Users(), store.Videos())
	content := usecase.NewContentUsecase(store.Videos(), store.Tweets(), store.Comments(), store.Users())
	playlists := usecase.NewPlaylistUsecase(store.Playlists(), store.Users(), store.Videos())

	handler := NewHandler(auth, relations, stats, content, playlists, config.CookieConfig{Secure: true}, jwtCfg)
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{AuthLimit: 1000, AuthWindow: time.Minute}, nil, logger)
	router := NewRouter(handler, middleware.NewAuthMiddleware(tokens, auth), limiter, logger, []string{"http://localhost:3000"})

	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

type session struct {
	ID           string
	AccessToken  string
	RefreshToken string
}

func (s *testServer) signup(username string) session {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"username":  username,
		"email":     username + "@example.com",
		"full_name": username,
		"password":  "password123",
	}, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"username": username,
		"password": "password123",
	}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	decode(s.t, rec, &resp)
	return session{ID: resp.User.ID, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
}

func (s *testServer) createVideo(owner session, title string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/v1/videos", map[string]interface{}{"title": title}, owner.AccessToken)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	var video struct {
		ID string `json:"id"`
	}
	decode(s.t, rec, &video)
	return video.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/healthcheck", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/health", nil, "")
	assert.Equal(t, "OK", rec.Body.String())
}

func TestLogin_SetsCookies(t *testing.T) {
	s := newTestServer(t)
	s.signup("carol")

	rec := s.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "carol@example.com",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	require.Contains(t, cookies, refreshTokenCookie)
	assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)
	assert.True(t, cookies[refreshTokenCookie].Secure)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.signup("carol")

	rec := s.do(http.MethodPost, "/api/v1/users/login", map[string]string{
		"username": "carol",
		"password": "nope",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.signup("dave")

	rec := s.do(http.MethodPost, "/api/v1/users/register", map[string]string{
		"username": "Dave", "email": "other@example.com", "full_name": "D", "password": "x",
	}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/users/register", map[string]string{"username": "eve"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAliceRefreshReplay(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refresh_token": alice.RefreshToken}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rotated usecase.TokenPair
	decode(t, rec, &rotated)
	assert.NotEqual(t, alice.RefreshToken, rotated.RefreshToken)

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refresh_token": alice.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refresh_token": "garbage"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestLogout_RevokesRefresh(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/users/logout", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refresh_token": alice.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/users/auth-events", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var events []map[string]interface{}
	decode(t, rec, &events)
	require.NotEmpty(t, events)
	assert.Equal(t, "reuse_detected", events[0]["kind"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/users/current-user", "/api/v1/likes/videos", "/api/v1/dashboard/stats"} {
		rec := s.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String(), path)
	}
}

func TestCurrentUser(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodGet, "/api/v1/users/current-user", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var user map[string]interface{}
	decode(t, rec, &user)
	assert.Equal(t, alice.ID, user["id"])
	assert.NotContains(t, user, "password_hash")
}

func TestLikeScenario(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")
	videoID := s.createVideo(bob, "bob's first")

	rec := s.do(http.MethodPost, "/api/v1/likes/toggle/v/"+videoID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var toggled map[string]interface{}
	decode(t, rec, &toggled)
	assert.Equal(t, "created", toggled["state"])
	assert.NotNil(t, toggled["relation"])

	rec = s.do(http.MethodGet, "/api/v1/likes/videos", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var liked []map[string]interface{}
	decode(t, rec, &liked)
	require.Len(t, liked, 1)
	assert.Equal(t, videoID, liked[0]["id"])

	rec = s.do(http.MethodGet, "/api/v1/dashboard/stats", nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]interface{}
	decode(t, rec, &stats)
	assert.Equal(t, float64(1), stats["like_count"])
	assert.Equal(t, float64(1), stats["video_count"])

	rec = s.do(http.MethodPost, "/api/v1/likes/toggle/v/"+videoID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var removed map[string]interface{}
	decode(t, rec, &removed)
	assert.Equal(t, "removed", removed["state"])
	require.Contains(t, removed, "relation")
	assert.Nil(t, removed["relation"])

	rec = s.do(http.MethodGet, "/api/v1/likes/videos", nil, alice.AccessToken)
	decode(t, rec, &liked)
	assert.Empty(t, liked)
}

func TestToggleErrors(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/likes/toggle/v/not-a-uuid", nil, alice.AccessToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/likes/toggle/t/"+uuid.NewString(), nil, alice.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/subscriptions/c/"+uuid.NewString(), nil, alice.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptionScenario(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")

	rec := s.do(http.MethodGet, "/api/v1/users/c/bob", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile map[string]interface{}
	decode(t, rec, &profile)
	assert.Equal(t, false, profile["is_subscribed"])

	rec = s.do(http.MethodPost, "/api/v1/subscriptions/c/"+bob.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/users/c/bob", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &profile)
	assert.Equal(t, true, profile["is_subscribed"])
	assert.Equal(t, float64(1), profile["subscriber_count"])

	rec = s.do(http.MethodGet, "/api/v1/subscriptions/c/"+bob.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var subscribers []map[string]interface{}
	decode(t, rec, &subscribers)
	require.Len(t, subscribers, 1)
	assert.Equal(t, alice.ID, subscribers[0]["user_id"])

	rec = s.do(http.MethodGet, "/api/v1/subscriptions/u/"+alice.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var channels []map[string]interface{}
	decode(t, rec, &channels)
	require.Len(t, channels, 1)
	assert.Equal(t, bob.ID, channels[0]["user_id"])

	rec = s.do(http.MethodGet, "/api/v1/users/c/nobody", nil, alice.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboard_EmptyChannel(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodGet, "/api/v1/dashboard/stats/"+alice.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats map[string]interface{}
	decode(t, rec, &stats)
	assert.Equal(t, float64(0), stats["average_views_per_video"])
	assert.Equal(t, float64(0), stats["video_count"])

	rec = s.do(http.MethodGet, "/api/v1/dashboard/videos", nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestVideoLifecycle(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")
	videoID := s.createVideo(bob, "clip")

	rec := s.do(http.MethodGet, "/api/v1/videos/"+videoID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var video map[string]interface{}
	decode(t, rec, &video)
	assert.Equal(t, float64(1), video["views"])

	rec = s.do(http.MethodPost, "/api/v1/comments/"+videoID, map[string]string{"content": "nice"}, alice.AccessToken)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/tweets", map[string]string{"content": "hello"}, alice.AccessToken)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/videos/"+videoID, nil, alice.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/videos/"+videoID, nil, bob.AccessToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/videos/"+videoID, nil, alice.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	rec := s.do(http.MethodPost, "/api/v1/users/change-password", map[string]string{
		"old_password": "password123",
		"new_password": "brand-new",
	}, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", map[string]string{"refresh_token": alice.RefreshToken}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/users/login", map[string]string{"username": "alice", "password": "brand-new"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublishToggle(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")
	videoID := s.createVideo(bob, "draft")

	rec := s.do(http.MethodPatch, "/api/v1/videos/"+videoID+"/publish", nil, alice.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/videos/"+videoID+"/publish", nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var video map[string]interface{}
	decode(t, rec, &video)
	assert.Equal(t, false, video["is_published"])

	rec = s.do(http.MethodGet, "/api/v1/videos/"+videoID, nil, alice.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var page struct {
		Videos []struct {
			ID string `json:"id"`
		} `json:"videos"`
		Total int `json:"total"`
	}
	rec = s.do(http.MethodGet, "/api/v1/videos?user_id="+bob.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &page)
	assert.Empty(t, page.Videos)
	assert.Zero(t, page.Total)

	rec = s.do(http.MethodGet, "/api/v1/videos?user_id="+bob.ID, nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &page)
	require.Len(t, page.Videos, 1)
	assert.Equal(t, videoID, page.Videos[0].ID)

	rec = s.do(http.MethodGet, "/api/v1/videos/"+videoID, nil, bob.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListingQueryValidation(t *testing.T) {
	s := newTestServer(t)
	alice := s.signup("alice")

	for _, path := range []string{
		"/api/v1/videos?user_id=nope",
		"/api/v1/videos?page=two",
		"/api/v1/videos?sort_by=password",
		"/api/v1/comments/" + uuid.NewString() + "?limit=x",
	} {
		rec := s.do(http.MethodGet, path, nil, alice.AccessToken)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestCommentsAndTweetsListing(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")
	videoID := s.createVideo(bob, "clip")

	for _, text := range []string{"first", "second"} {
		rec := s.do(http.MethodPost, "/api/v1/comments/"+videoID, map[string]string{"content": text}, alice.AccessToken)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	rec := s.do(http.MethodGet, "/api/v1/comments/"+videoID+"?page=1&limit=1", nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var comments struct {
		Comments []struct {
			Content string `json:"content"`
		} `json:"comments"`
		TotalComments int `json:"total_comments"`
	}
	decode(t, rec, &comments)
	assert.Equal(t, 2, comments.TotalComments)
	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "second", comments.Comments[0].Content)

	rec = s.do(http.MethodPost, "/api/v1/tweets", map[string]string{"content": "hello"}, alice.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	var tweets struct {
		Tweets []struct {
			Content string `json:"content"`
		} `json:"tweets"`
	}
	rec = s.do(http.MethodGet, "/api/v1/tweets/u/"+alice.ID, nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &tweets)
	require.Len(t, tweets.Tweets, 1)
	assert.Equal(t, "hello", tweets.Tweets[0].Content)

	rec = s.do(http.MethodGet, "/api/v1/tweets", nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tweets":[]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/tweets/u/"+uuid.NewString(), nil, bob.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaylistScenario(t *testing.T) {
	s := newTestServer(t)
	bob := s.signup("bob")
	alice := s.signup("alice")
	videoID := s.createVideo(bob, "clip")

	rec := s.do(http.MethodPost, "/api/v1/playlists", map[string]string{"name": "mix", "description": "weekend"}, bob.AccessToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID string `json:"id"`
	}
	decode(t, rec, &created)
	member := "/api/v1/playlists/" + created.ID + "/videos/" + videoID

	type playlistBody struct {
		Videos []struct {
			ID string `json:"id"`
		} `json:"videos"`
	}
	for i := 0; i < 2; i++ {
		rec = s.do(http.MethodPost, member, nil, bob.AccessToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body playlistBody
		decode(t, rec, &body)
		require.Len(t, body.Videos, 1)
		assert.Equal(t, videoID, body.Videos[0].ID)
	}

	rec = s.do(http.MethodPost, member, nil, alice.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/playlists/"+created.ID+"/videos/"+uuid.NewString(), nil, bob.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/playlists/u/"+bob.ID, nil, alice.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Playlists []struct {
			ID string `json:"id"`
		} `json:"playlists"`
	}
	decode(t, rec, &listed)
	require.Len(t, listed.Playlists, 1)
	assert.Equal(t, created.ID, listed.Playlists[0].ID)

	rec = s.do(http.MethodDelete, member, nil, bob.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	var emptied playlistBody
	decode(t, rec, &emptied)
	assert.Empty(t, emptied.Videos)

	rec = s.do(http.MethodDelete, "/api/v1/playlists/"+created.ID, nil, alice.AccessToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = s.do(http.MethodDelete, "/api/v1/playlists/"+created.ID, nil, bob.AccessToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/v1/playlists/"+created.ID, nil, bob.AccessToken)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
