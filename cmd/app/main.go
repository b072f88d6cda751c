// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Antonio1491/parksys-sub000/internal/config"
	pg "github.com/Antonio1491/parksys-sub000/internal/infra/db/postgres"
	"github.com/Antonio1491/parksys-sub000/internal/infra/email"
	"github.com/Antonio1491/parksys-sub000/internal/infra/logging"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
	"github.com/Antonio1491/parksys-sub000/internal/infra/payment"
	red "github.com/Antonio1491/parksys-sub000/internal/infra/redis"
	"github.com/Antonio1491/parksys-sub000/internal/infra/sched"
	"github.com/Antonio1491/parksys-sub000/internal/infra/web"
	"github.com/Antonio1491/parksys-sub000/internal/usecase"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no PII redaction)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()
	pg.StartPoolStatsCollector(ctx, pool, 15*time.Second)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	activityRepo := pg.NewActivityRepoCacheDecorator(pg.NewActivityRepo(pool), redisClient, cfg.Redis.TTL)
	registrationRepo := pg.NewRegistrationRepo(pool)
	outboxRepo := pg.NewOutboxRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Adapters ----
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)
	mailQueue := email.NewQueueClient(cfg.Email.QueueURL, cfg.Email.APIKey)

	// ---- Use cases ----
	activityUC := usecase.NewActivityUseCase(activityRepo, logger)
	checkoutUC := usecase.NewCheckoutUseCase(activityRepo, gateway, cfg.Stripe.Currency, logger)
	registrationUC := usecase.NewRegistrationUseCase(
		activityRepo, registrationRepo, outboxRepo,
		gateway, tm, locker,
		cfg.Stripe.Currency, cfg.Email.ConfirmationTemplate,
		logger,
	)
	outboxUC := usecase.NewOutboxUseCase(outboxRepo, mailQueue, cfg.Outbox.MaxAttempts, logger)

	// ---- Outbox worker ----
	worker := sched.NewOutboxWorker(cfg.Outbox.Interval, cfg.Outbox.BatchSize, outboxUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- API server ----
	srv := web.NewServer(activityUC, checkoutUC, registrationUC, cfg.Admin.APIKey, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", apiServer.Addr).Msg("api server listening")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("api server error")
		}
	}()

	// ---- Metrics server ----
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Admin.Port),
		Handler: metricsMux,
	}
	go func() {
		logger.Info().Str("addr", metricsServer.Addr).Msg("metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
}
