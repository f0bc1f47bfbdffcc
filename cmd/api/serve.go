package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadp "rental-backend/internal/adapter/http"
	"rental-backend/internal/adapter/middleware"
	"rental-backend/internal/adapter/repository/mysql"
	"rental-backend/internal/config"
	"rental-backend/internal/infrastructure/cache"
	"rental-backend/internal/infrastructure/db"
	"rental-backend/internal/infrastructure/logging"
	"rental-backend/internal/usecase/application"
	"rental-backend/internal/usecase/lead"
	"rental-backend/internal/usecase/property"
	"rental-backend/internal/usecase/visit"
	"rental-backend/internal/validation"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			autoMigrate, _ := cmd.Flags().GetBool("auto-migrate")
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().Bool("auto-migrate", false, "apply the schema before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	if autoMigrate {
		if err := mysql.AutoMigrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated")
	}

	apps := mysql.NewApplicationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	handlers := httpadp.Handlers{
		Health:       httpadp.NewHandler(),
		Applications: httpadp.NewApplicationHandler(application.NewUsecase(apps, tx, log)),
		Visits:       httpadp.NewVisitHandler(visit.NewUsecase(apps, mysql.NewVisitRepository(gdb), tx, log)),
		Leads:        httpadp.NewLeadHandler(lead.NewUsecase(mysql.NewLeadRepository(gdb))),
		Properties:   httpadp.NewPropertyHandler(property.NewUsecase(mysql.NewPropertyRepository(gdb))),
	}

	var writeMW []echo.MiddlewareFunc
	if cfg.IdempEnabled {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		ttl := time.Duration(cfg.IdempTTLSecs) * time.Second
		writeMW = append(writeMW, middleware.Idempotency(rdb, ttl, log))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = httpadp.NewHTTPErrorHandler(cfg.Production(), log)
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		middleware.Metrics(),
		middleware.RequestLog(log),
	)
	httpadp.RegisterRoutes(e, handlers, writeMW...)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
