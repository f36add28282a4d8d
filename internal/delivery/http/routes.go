package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GuranshBedi/Backendd/internal/logging"
	"github.com/GuranshBedi/Backendd/internal/middleware"
)

func NewRouter(handler *Handler, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter, logger *slog.Logger, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", handler.HealthCheck)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.Register)

			r.Group(func(r chi.Router) {
				r.Use(limiter.Limit("auth"))
				r.Post("/login", handler.Login)
				r.Post("/refresh-token", handler.RefreshToken)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/logout", handler.Logout)
				r.Get("/current-user", handler.GetCurrentUser)
				r.Post("/change-password", handler.ChangePassword)
				r.Get("/auth-events", handler.GetAuthEvents)
				r.Get("/c/{username}", handler.GetChannelProfile)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/likes", func(r chi.Router) {
				r.Post("/toggle/v/{videoId}", handler.ToggleVideoLike)
				r.Post("/toggle/c/{commentId}", handler.ToggleCommentLike)
				r.Post("/toggle/t/{tweetId}", handler.ToggleTweetLike)
				r.Get("/videos", handler.GetLikedVideos)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/c/{channelId}", handler.ToggleSubscription)
				r.Get("/c/{channelId}", handler.GetChannelSubscribers)
				r.Get("/u/{subscriberId}", handler.GetSubscribedChannels)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/stats", handler.GetMyChannelStats)
				r.Get("/stats/{channelId}", handler.GetChannelStats)
				r.Get("/videos", handler.GetMyChannelVideos)
			})

			r.Route("/videos", func(r chi.Router) {
				r.Get("/", handler.ListVideos)
				r.Post("/", handler.CreateVideo)
				r.Get("/{videoId}", handler.GetVideo)
				r.Delete("/{videoId}", handler.DeleteVideo)
				r.Patch("/{videoId}/publish", handler.TogglePublish)
			})

			r.Route("/tweets", func(r chi.Router) {
				r.Get("/", handler.GetMyTweets)
				r.Post("/", handler.CreateTweet)
				r.Get("/u/{userId}", handler.GetUserTweets)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Get("/{videoId}", handler.GetVideoComments)
				r.Post("/{videoId}", handler.CreateComment)
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", handler.CreatePlaylist)
				r.Get("/u/{userId}", handler.GetUserPlaylists)
				r.Get("/{playlistId}", handler.GetPlaylist)
				r.Delete("/{playlistId}", handler.DeletePlaylist)
				r.Post("/{playlistId}/videos/{videoId}", handler.AddVideoToPlaylist)
				r.Delete("/{playlistId}/videos/{videoId}", handler.RemoveVideoFromPlaylist)
			})
		})
	})

	return r
}
