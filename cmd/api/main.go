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

	"github.com/spf13/pflag"

	"github.com/baharkarakas/ereceipt-backend/internal/api"
	"github.com/baharkarakas/ereceipt-backend/internal/auth"
	"github.com/baharkarakas/ereceipt-backend/internal/config"
	"github.com/baharkarakas/ereceipt-backend/internal/db"
	"github.com/baharkarakas/ereceipt-backend/internal/logger"
	"github.com/baharkarakas/ereceipt-backend/internal/metrics"
	"github.com/baharkarakas/ereceipt-backend/internal/notify"
	"github.com/baharkarakas/ereceipt-backend/internal/repository/memory"
	"github.com/baharkarakas/ereceipt-backend/internal/repository/postgres"
	"github.com/baharkarakas/ereceipt-backend/internal/services"
	"github.com/baharkarakas/ereceipt-backend/internal/worker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ereceipt:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := pflag.String("config", "", "path to a YAML config file (overrides CONFIG_FILE)")
	port := pflag.String("port", "", "HTTP port (overrides HTTP_PORT)")
	demo := pflag.Bool("demo", true, "echo OTP codes back to the caller (overrides DEMO)")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.HTTPPort = *port
	}
	if pflag.CommandLine.Changed("demo") {
		cfg.Demo = *demo
	}

	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos := memory.NewRepositories()
	if cfg.DatabaseURL != "" {
		dbPool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer dbPool.Close()
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, dbPool); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
		}
		repos.AuditLogs = postgres.NewAuditLogs(dbPool)
		log.Info("audit trail in postgres")
	}

	wp := worker.NewPool(4, 1024)
	defer wp.Stop()

	notifier := notify.NewLogNotifier(log)
	audit := services.NewAuditor(repos.AuditLogs, wp)
	sessions := auth.NewSessionManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.ViewSessionTTL)
	receiptSvc := services.NewReceiptService(repos, cfg, notifier, wp, audit)
	otpSvc := services.NewOtpService(repos, cfg, notifier, wp, sessions, audit)

	go services.NewSweeper(repos, cfg.Retention).Run(ctx, cfg.SweepInterval)

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterDeps{
			Cfg:        cfg,
			ReceiptSvc: receiptSvc,
			OtpSvc:     otpSvc,
			Sessions:   sessions,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "demo", cfg.Demo)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
