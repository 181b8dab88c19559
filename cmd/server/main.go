package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/juanmzaragoza/billing-dad-project/internal/config"
	"github.com/juanmzaragoza/billing-dad-project/internal/infra"
	"github.com/juanmzaragoza/billing-dad-project/internal/logger"
	"github.com/juanmzaragoza/billing-dad-project/internal/metrics"
	"github.com/juanmzaragoza/billing-dad-project/internal/repository"
	"github.com/juanmzaragoza/billing-dad-project/internal/router"
	"github.com/juanmzaragoza/billing-dad-project/internal/service"
	"github.com/juanmzaragoza/billing-dad-project/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := logger.Setup(logger.LogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Fatal().Err(err).Msg("invalid log configuration")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if cfg.MigrateOnStart {
		if err := infra.RunMigrations(db); err != nil {
			log.Fatal().Err(err).Msg("failed to apply migrations")
		}
	}

	// Redis is optional: without it the API still serves documents, but the
	// dashboard is never cached and deliveries answer 503.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, continuing without cache and delivery queue")
			rdb = nil
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	mailer := infra.NewMailer(cfg)
	breaker := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		encolador service.Encolador
		wg        sync.WaitGroup
	)
	if rdb != nil && mailer.Configurado() {
		encolador = worker.NewDispatcher(rdb)

		// The worker renders through its own EnvioService; it never enqueues.
		renderer := service.NewEnvioService(
			repository.NewFacturaRepository(db),
			repository.NewOrdenCompraRepository(db),
			repository.NewClienteRepository(db),
			repository.NewProveedorRepository(db),
			nil,
			router.EmpresaDesdeConfig(cfg),
		)
		envios := worker.NewEnvioWorker(renderer, mailer, breaker, cfg.EmpresaNombre)

		pool := worker.NewPool(rdb, worker.PoolConfig{
			Workers:     cfg.WorkerPoolSize,
			MaxAttempts: cfg.JobMaxAttempts,
			Metrics:     m,
		})
		pool.Register(worker.JobEnvio, envios.Process)
		cron := worker.NewRetryCron(rdb)

		wg.Add(2)
		go func() {
			defer wg.Done()
			pool.Start(ctx)
		}()
		go func() {
			defer wg.Done()
			cron.Start(ctx)
		}()
	} else {
		log.Info().
			Bool("redis", rdb != nil).
			Bool("smtp", mailer.Configurado()).
			Msg("document delivery disabled")
	}

	r := router.New(cfg, router.Deps{
		DB:          db,
		Redis:       rdb,
		Metrics:     m,
		Gatherer:    reg,
		Encolador:   encolador,
		MailBreaker: breaker,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("billing API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	cancel()
	wg.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
