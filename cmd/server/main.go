package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/app"
	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/pkg/nativelog"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	envFile := flag.String("env-file", ".env", "Path to dotenv file (ignored when missing)")
	flag.Parse()

	envErr := godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLogger, _ := zap.NewProduction()
		bootLogger.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := nativelog.NewZapLogger(cfg.LogDir(), cfg.IsDev())
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("native log pipeline unavailable, fallback to zap production logger", zap.Error(err))
	}
	defer logger.Sync()

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		logger.Warn("dotenv file not loaded", zap.String("path", *envFile), zap.Error(envErr))
	}

	application, err := app.New(context.Background(), logger, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              application.Addr(),
		Handler:           application.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("history_backend", cfg.History.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := application.Shutdown(); err != nil {
		logger.Warn("history store close failed", zap.Error(err))
	}
	logger.Info("server exited")
}
