package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/GuranshBedi/Backendd/internal/config"
	delivery "github.com/GuranshBedi/Backendd/internal/delivery/http"
	"github.com/GuranshBedi/Backendd/internal/domain"
	"github.com/GuranshBedi/Backendd/internal/logging"
	"github.com/GuranshBedi/Backendd/internal/middleware"
	"github.com/GuranshBedi/Backendd/internal/repository/memory"
	"github.com/GuranshBedi/Backendd/internal/repository/postgres"
	"github.com/GuranshBedi/Backendd/internal/usecase"
)

const connectAttempts = 5

// stores is the repository set the usecases run against, whichever driver
// backs it.
type stores struct {
	users         domain.UserRepository
	refreshTokens domain.RefreshTokenRepository
	relations     domain.RelationRepository
	videos        domain.VideoRepository
	tweets        domain.TweetRepository
	comments      domain.CommentRepository
	playlists     domain.PlaylistRepository
	authEvents    domain.AuthEventRepository
}

func main() {
	cfg := config.Load()
	logger := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("backend starting", "port", cfg.Server.Port, "driver", cfg.Database.Driver)

	repos, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	var redisClient redis.UniversalClient
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unreachable, rate limiting will fall back to local buckets", "addr", cfg.Redis.Addr, "error", err)
		} else {
			logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		}
		redisClient = client
	}

	tokenUsecase := usecase.NewTokenUsecase(repos.refreshTokens, repos.users, &cfg.JWT)
	authUsecase := usecase.NewAuthUsecase(repos.users, repos.authEvents, tokenUsecase, logger)
	relationUsecase := usecase.NewRelationUsecase(repos.relations, repos.users, repos.videos, repos.tweets, repos.comments, logger)
	statsUsecase := usecase.NewStatsUsecase(repos.relations, repos.users, repos.videos)
	contentUsecase := usecase.NewContentUsecase(repos.videos, repos.tweets, repos.comments, repos.users)
	playlistUsecase := usecase.NewPlaylistUsecase(repos.playlists, repos.users, repos.videos)

	handler := delivery.NewHandler(authUsecase, relationUsecase, statsUsecase, contentUsecase, playlistUsecase, cfg.Cookie, cfg.JWT)
	authMiddleware := middleware.NewAuthMiddleware(tokenUsecase, authUsecase)
	limiter := middleware.NewRateLimiter(cfg.RateLimit, redisClient, logger)
	router := delivery.NewRouter(handler, authMiddleware, limiter, logger, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &stores{
			users:         s.Users(),
			refreshTokens: s.RefreshTokens(),
			relations:     s.Relations(),
			videos:        s.Videos(),
			tweets:        s.Tweets(),
			comments:      s.Comments(),
			playlists:     s.Playlists(),
			authEvents:    s.AuthEvents(),
		}, func() {}, nil
	}

	pool, err := connect(ctx, cfg.Database.URL, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		db := stdlib.OpenDBFromPool(pool)
		err := postgres.Migrate(ctx, db)
		db.Close()
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("migrations applied")
	}

	r := postgres.NewRepositories(pool, cfg.Database.QueryTimeout)
	return &stores{
		users:         r.Users,
		refreshTokens: r.RefreshTokens,
		relations:     r.Relations,
		videos:        r.Videos,
		tweets:        r.Tweets,
		comments:      r.Comments,
		playlists:     r.Playlists,
		authEvents:    r.AuthEvents,
	}, pool.Close, nil
}

// connect retries with a linear backoff so the server can start alongside
// its database container.
func connect(ctx context.Context, url string, logger *slog.Logger) (*pgxpool.Pool, error) {
	for attempt := 1; ; attempt++ {
		pool, err := tryConnect(ctx, url)
		if err == nil {
			logger.Info("connected to postgres")
			return pool, nil
		}
		logger.Warn("database connection failed", "attempt", attempt, "error", err)
		if attempt == connectAttempts {
			return nil, fmt.Errorf("could not connect to database after %d attempts: %w", connectAttempts, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
}

func tryConnect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
