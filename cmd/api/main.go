package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/handlers"
	"portfolio/internal/jobs"
	"portfolio/internal/log"
	"portfolio/internal/metrics"
	"portfolio/internal/middleware"
	"portfolio/internal/queue"
	"portfolio/internal/repository"
	"portfolio/internal/security"
	"portfolio/internal/server"
	"portfolio/internal/service"
	"portfolio/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := log.New("production")
		bootstrap.Fatal().Err(err).Msg("load config")
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres, "portfolio-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	if cfg.Postgres.AutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Fatal().Err(err).Msg("migrations failed")
		}
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	objectStore, err := storage.NewObjectStore(cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init object store")
	}
	if err := objectStore.EnsureBucket(ctx); err != nil {
		logger.Warn().Err(err).Msg("ensure bucket failed")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	tokens, err := security.NewTokenManager(security.TokenConfig{
		Secret:   cfg.Security.JWTSecret,
		Issuer:   cfg.Security.JWTIssuer,
		Audience: cfg.Security.JWTAudience,
		TTL:      cfg.Security.JWTTTL,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("token manager")
	}

	var contentCache service.ContentCache
	if cfg.Cache.Enabled {
		contentCache = cache.NewContentCache(redisClient, cfg.Cache.TTL)
	}

	sanitizer := security.NewSanitizer()
	contentLog := log.Component(logger, "content")

	authService := service.NewAuthService(
		repository.NewUserRepository(dbPool),
		tokens,
		cfg.Security,
		collector,
		log.Component(logger, "auth"),
	)
	uploads := service.NewUploadService(objectStore, cfg.Storage.MaxUploadBytes, log.Component(logger, "uploads"))
	projects := service.NewProjectService(repository.NewProjectRepository(dbPool), uploads, contentCache, sanitizer, contentLog)
	skills := service.NewSkillService(repository.NewSkillRepository(dbPool), contentCache, sanitizer, contentLog)
	experiences := service.NewExperienceService(repository.NewExperienceRepository(dbPool), contentCache, sanitizer, contentLog)
	education := service.NewEducationService(repository.NewEducationRepository(dbPool), contentCache, sanitizer, contentLog)
	contact := service.NewContactService(repository.NewContactRepository(dbPool), sanitizer, log.Component(logger, "contact"))

	if created, err := authService.EnsureAdmin(ctx, cfg.Seed); err != nil {
		logger.Error().Err(err).Msg("seed admin failed")
	} else if created {
		logger.Info().Str("username", cfg.Seed.AdminUsername).Msg("admin account seeded")
	}

	authLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Name:        "auth",
		PerMinute:   cfg.RateLimit.AuthPerMinute,
		Burst:       cfg.RateLimit.AuthBurst,
		IdleTimeout: cfg.RateLimit.IdleTimeout,
	}, logger)
	contactLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Name:        "contact",
		PerMinute:   cfg.RateLimit.ContactPerMinute,
		Burst:       cfg.RateLimit.ContactBurst,
		IdleTimeout: cfg.RateLimit.IdleTimeout,
	}, logger)

	handlerSet := handlers.NewHandlerSet(handlers.Deps{
		Log:         logger,
		Environment: cfg.Environment,
		Auth:        authService,
		Projects:    projects,
		Skills:      skills,
		Experiences: experiences,
		Education:   education,
		Contact:     contact,
		Checks: []handlers.HealthCheck{
			{Name: "postgres", Check: dbPool.Ping},
			{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
			{Name: "storage", Check: objectStore.Ping},
		},
		Metrics:        metrics.Handler(registry),
		AuthLimiter:    authLimiter.Middleware(),
		ContactLimiter: contactLimiter.Middleware(),
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})
	httpServer := server.NewHTTPServer(cfg, logger, collector, handlerSet)

	scheduler := jobs.NewScheduler(queue.NewProducer(redisClient, cfg.Jobs.Stream), cfg.Jobs, log.Component(logger, "jobs"))
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient, authLimiter, contactLimiter)
}

func waitForShutdown(
	logger zerolog.Logger,
	srv *server.HTTPServer,
	scheduler *jobs.Scheduler,
	db *pgxpool.Pool,
	redisClient *redis.Client,
	limiters ...*middleware.RateLimiter,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	scheduler.Stop()
	for _, l := range limiters {
		l.Stop()
	}

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
