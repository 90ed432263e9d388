package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/database"
	"portfolio/internal/log"
	"portfolio/internal/queue"
	"portfolio/internal/repository"
	"portfolio/internal/security"
	"portfolio/internal/service"
	"portfolio/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := log.New("production")
		bootstrap.Fatal().Err(err).Msg("load config")
	}

	logger := log.Component(log.New(cfg.Environment), "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres, "portfolio-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	client, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	contacts := service.NewContactService(repository.NewContactRepository(dbPool), security.NewSanitizer(), logger)
	processor := tasks.NewProcessor(contacts, cfg.Jobs.ContactRetention, logger)
	consumer := queue.NewConsumer(
		client,
		cfg.Jobs.Stream,
		cfg.Worker.Group,
		cfg.Worker.Consumer,
		cfg.Worker.ClaimInterval,
		logger,
		processor,
	)

	logger.Info().
		Str("stream", cfg.Jobs.Stream).
		Str("group", cfg.Worker.Group).
		Str("consumer", cfg.Worker.Consumer).
		Msg("worker started")

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped unexpectedly")
		return
	}

	logger.Info().Msg("worker exited cleanly")
}
