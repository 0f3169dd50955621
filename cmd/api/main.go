package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/aniketdange3/dental-clinic-api/internal/config"
	"github.com/aniketdange3/dental-clinic-api/internal/handler"
	expenseHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/expense"
	inventoryHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/inventory"
	patientHandler "github.com/aniketdange3/dental-clinic-api/internal/handler/patient"
	"github.com/aniketdange3/dental-clinic-api/internal/middleware"
	"github.com/aniketdange3/dental-clinic-api/internal/repository/postgres"
	"github.com/aniketdange3/dental-clinic-api/internal/router"
	expenseService "github.com/aniketdange3/dental-clinic-api/internal/service/expense"
	inventoryService "github.com/aniketdange3/dental-clinic-api/internal/service/inventory"
	patientService "github.com/aniketdange3/dental-clinic-api/internal/service/patient"
	"github.com/aniketdange3/dental-clinic-api/pkg/logger"
	"github.com/aniketdange3/dental-clinic-api/pkg/messaging/redis"
	"github.com/aniketdange3/dental-clinic-api/pkg/metrics"
	"github.com/aniketdange3/dental-clinic-api/pkg/security"
	"github.com/aniketdange3/dental-clinic-api/pkg/worker"
)

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

	if err := postgres.CreateSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	patientRepo := postgres.NewPatientRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	var encryptor security.Encryptor
	if key := cfg.Security.EncryptionKey; key != "" {
		encryptor, err = security.NewAESEncryptor([]byte(key))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid encryption key")
		}
	}

	patientSvc := patientService.NewService(patientRepo, encryptor)
	inventorySvc := inventoryService.NewService(inventoryRepo)
	expenseSvc := expenseService.NewService(expenseRepo)

	registry := prometheus.NewRegistry()
	m := metrics.New("clinic", registry)

	r, err := router.New(router.Config{
		RateLimit:       rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:       cfg.RateLimit.Burst,
		CORS:            middleware.DefaultCORSConfig(),
		Metrics:         m,
		MetricsRegistry: registry,
	},
		handler.NewHealthHandler(db),
		patientHandler.NewHandler(patientSvc, outboxRepo),
		inventoryHandler.NewHandler(inventorySvc, outboxRepo),
		expenseHandler.NewHandler(expenseSvc, outboxRepo),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	outboxProcessor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		Channel:      cfg.Outbox.Channel,
		BatchSize:    cfg.Outbox.BatchSize,
		PollInterval: cfg.Outbox.PollInterval,
		MaxRetries:   cfg.Outbox.MaxRetries,
		Retention:    cfg.Outbox.Retention,
	}, appLogger, m)
	go outboxProcessor.Start(ctx)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
