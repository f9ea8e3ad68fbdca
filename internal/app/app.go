package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/lessonforge-backend/internal/adapter/mongodb"
	mongobook "github.com/heartmarshall/lessonforge-backend/internal/adapter/mongodb/book"
	mongoconv "github.com/heartmarshall/lessonforge-backend/internal/adapter/mongodb/conversation"
	"github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres"
	pglesson "github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres/lesson"
	pgprogress "github.com/heartmarshall/lessonforge-backend/internal/adapter/postgres/progress"
	"github.com/heartmarshall/lessonforge-backend/internal/auth"
	"github.com/heartmarshall/lessonforge-backend/internal/config"
	"github.com/heartmarshall/lessonforge-backend/internal/domain"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/cache"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/retry"
	"github.com/heartmarshall/lessonforge-backend/internal/llm/router"
	"github.com/heartmarshall/lessonforge-backend/internal/metrics"
	"github.com/heartmarshall/lessonforge-backend/internal/service/lesson"
	"github.com/heartmarshall/lessonforge-backend/internal/service/library"
	"github.com/heartmarshall/lessonforge-backend/internal/service/progress"
	"github.com/heartmarshall/lessonforge-backend/internal/service/tutor"
	"github.com/heartmarshall/lessonforge-backend/internal/transport/middleware"
	"github.com/heartmarshall/lessonforge-backend/internal/transport/rest"
)

// Run loads configuration from configPath (see config.LoadFile), connects
// to every backing store, wires the services and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	// --- Storage ---

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	mongoClient, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Warn("mongodb disconnect", slog.String("error", err.Error()))
		}
	}()
	mongoDB := mongoClient.Database(cfg.Mongo.Database)
	if err := mongodb.EnsureIndexes(ctx, mongoDB); err != nil {
		return fmt.Errorf("mongodb indexes: %w", err)
	}

	health := map[string]rest.Pinger{
		"postgres": pool,
		"mongodb": rest.PingFunc(func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}),
	}

	responseCache, closeCache, err := newCache(ctx, cfg, health)
	if err != nil {
		return err
	}
	defer closeCache()

	// --- AI ---

	m := metrics.New()

	registry, closers := buildProviders(cfg.AI, responseCache, logger)
	defer closeAll(logger, closers)

	routeCfg := routeConfig(cfg.AI)
	if err := checkRoutes(registry, routeCfg); err != nil {
		return err
	}
	routes := router.New(routeCfg)
	retrier := retry.New(retry.Config{
		MaxRetries: cfg.AI.MaxRetries,
		Timeout:    cfg.AI.Timeout,
	}, logger).OnRetry(func(model string, _ int, perr *domain.ProviderError) {
		m.ObserveRetry(model, perr.Code.String())
	})

	logger.Info("ai providers configured", slog.Any("providers", registry.Names()))

	// --- Services ---

	lessonRepo := pglesson.New(pool)
	progressRepo := pgprogress.New(pool)
	txm := postgres.NewTxManager(pool)

	lessonSvc := lesson.NewService(logger, lessonRepo, registry, routes, retrier, m)
	progressSvc := progress.NewService(logger, progressRepo, lessonRepo, txm)
	tutorSvc := tutor.NewService(logger, mongoconv.New(mongoDB), lessonRepo, registry, routes, retrier, cfg.AI.ChatHistory)
	librarySvc := library.NewService(logger, mongobook.New(mongoDB))

	// --- HTTP ---

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(health, BuildVersion()),
		Lesson:   rest.NewLessonHandler(lessonSvc, logger),
		Progress: rest.NewProgressHandler(progressSvc, logger),
		Tutor:    rest.NewTutorHandler(tutorSvc, logger),
		Library:  rest.NewLibraryHandler(librarySvc, logger),
		Metrics:  m.Handler(),
	}, m)

	chain := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit)
		defer limiter.Stop()
		chain = append(chain, limiter.Middleware)
	}
	chain = append(chain, middleware.Auth(jwtManager))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      middleware.Chain(chain...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until ctx is done and then drains in-flight requests for
// at most ShutdownTimeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}

// newCache builds the response cache selected by ai.cache_backend. The
// redis backend also joins the health checks.
func newCache(ctx context.Context, cfg *config.Config, health map[string]rest.Pinger) (cache.Cache, func(), error) {
	if cfg.AI.CacheBackend != config.CacheBackendRedis {
		return cache.NewMemory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rc := cache.NewRedis(client, cfg.Redis.KeyPrefix)
	if err := rc.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	health["redis"] = rc
	return rc, func() { _ = client.Close() }, nil
}

func closeAll(logger *slog.Logger, closers []io.Closer) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("close provider client", slog.String("error", err.Error()))
		}
	}
}
