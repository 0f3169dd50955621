package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/aniketdange3/dental-clinic-api/internal/config"
	"github.com/aniketdange3/dental-clinic-api/internal/email"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/postgres"
	inventoryService "github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
	"github.com/aniketdange3/dental-clinic-api/pkg/logger"
	"github.com/aniketdange3/dental-clinic-api/pkg/messaging/redis"
	"github.com/aniketdange3/dental-clinic-api/pkg/metrics"
	"github.com/aniketdange3/dental-clinic-api/pkg/worker"
)

// The worker drains the outbox to Redis, prunes processed events and,
// when enabled, mails low stock alerts.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{Level: logger.InfoLevel})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.New("clinic_worker", prometheus.NewRegistry())

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		Channel:      cfg.Outbox.Channel,
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
		MaxRetries:   cfg.Outbox.MaxRetries,
		Retention:    cfg.Outbox.Retention,
	}, appLogger, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				processor.Cleanup(ctx)
			}
		}
	}()

	if cfg.Alerts.Enabled {
		inventoryRepo := postgres.NewInventoryRepository(db)
		inventorySvc := inventoryService.NewService(inventoryRepo)
		alerts := email.NewAlertService(inventorySvc, email.Config{
			SMTPHost:     cfg.Alerts.SMTPHost,
			SMTPPort:     cfg.Alerts.SMTPPort,
			SMTPUser:     cfg.Alerts.SMTPUser,
			SMTPPassword: cfg.Alerts.SMTPPassword,
			From:         cfg.Alerts.From,
			To:           cfg.Alerts.To,
			DedupeWindow: cfg.Alerts.DedupeWindow,
		}, appLogger)
		go alerts.Run(ctx, cfg.Alerts.SweepInterval)
	}

	log.Info().Msg("worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("worker shutting down")
	cancel()
}
