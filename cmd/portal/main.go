package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"jiscare/internal/api"
	"jiscare/internal/bootstrap"
	"jiscare/internal/config"
	"jiscare/internal/dayoff"
	"jiscare/internal/events"
	"jiscare/internal/kv"
	"jiscare/internal/metrics"
	"jiscare/internal/reminders"
	"jiscare/internal/roster"
	"jiscare/internal/schedule"
	"jiscare/internal/session"
	"jiscare/internal/store"
	"jiscare/internal/workflow"
)

func main() {
	// Initialize logger
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("JISCARE_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := kv.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("open cache db error")
	}
	defer db.Close()

	bus := events.NewEventBus()
	st := store.New(db, bus, &logger)

	client := workflow.NewClient(cfg.Workflow.BaseURL, cfg.WorkflowTimeout())
	var rdb *redis.Client
	if cfg.Redis.Address != "" && cfg.Workflow.CacheTTLSeconds > 0 {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		client.UseRedisCache(rdb, cfg.CacheTTL())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	// One-shot pull of authoritative state; failures keep the cache.
	res := bootstrap.Run(ctx, client, st, &logger)
	logger.Info().
		Bool("employees", res.Employees).
		Bool("shifts", res.Shifts).
		Bool("dayoffs", res.DayOffs).
		Msg("bootstrap sync finished")

	sessions := session.NewManager(st, &logger)
	schedules := schedule.NewService(st, client, &logger)
	dayoffs := dayoff.NewService(st, client, &logger)
	rosterSvc := roster.NewService(st, client, &logger)

	schedules.StartReconciler(ctx, cfg.ReconcileInterval())
	dayoffs.StartReconciler(ctx, cfg.ReconcileInterval())

	if cfg.Database.Backup.Enabled {
		backup := kv.NewBackupService(
			cfg.Database.Path,
			cfg.Database.Backup.StoragePath,
			cfg.BackupInterval(),
			cfg.Database.Backup.RetentionDays,
			&logger,
		)
		go backup.Start(ctx)
	}

	if cfg.Reminders.Enabled {
		remCfg := reminders.DefaultSchedulerConfig()
		if cfg.Reminders.Timezone != "" {
			remCfg.Timezone = cfg.Reminders.Timezone
		}
		remCfg.Weekday = time.Weekday(cfg.Reminders.Weekday)
		if cfg.Reminders.Hour > 0 {
			remCfg.Hour = cfg.Reminders.Hour
		}
		mailer, err := reminders.NewScheduler(remCfg, st, rosterSvc, &logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("reminder scheduler config error")
		}
		go mailer.Start(ctx)
	}

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	handlers := api.NewHandlers(st, sessions, schedules, dayoffs, rosterSvc, &logger)
	app := api.NewApp(handlers, cfg.Server.AllowOrigins)

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = app.ShutdownWithContext(shutdown)
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("portal started")
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		logger.Error().Err(err).Msg("server error")
	}
}

func startHealthServer(ctx context.Context, port int, db *kv.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
