package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
	"github.com/mx-space/docinsight/internal/middleware"
	"github.com/mx-space/docinsight/internal/modules/history"
	"github.com/mx-space/docinsight/internal/modules/insight"
	"github.com/mx-space/docinsight/internal/modules/processing/summarize"
	"github.com/mx-space/docinsight/internal/modules/storage/archive"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  history.Store
	svc    *insight.Service
	logger *zap.Logger
}

// New initializes the application: history store → summarizer → archive → routes.
func New(ctx context.Context, logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := history.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("history store (%s): %w", cfg.History.Backend, err)
	}

	opts := make([]insight.Option, 0, 1)
	if cfg.Archive.Enable {
		arch, err := archive.New(cfg.Archive)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("archive: %w", err)
		}
		opts = append(opts, insight.WithArchiver(arch))
	}

	summarizer := summarize.New(cfg.Summarizer)
	logSummarizerMode(logger, cfg.Summarizer)

	svc := insight.NewService(store, summarizer, logger, opts...)
	return newApp(cfg, logger, store, svc), nil
}

func newApp(cfg *config.AppConfig, logger *zap.Logger, store history.Store, svc *insight.Service) *App {
	applyRuntimeSettings(cfg)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{cfg: cfg, router: router, store: store, svc: svc, logger: logger}
	app.registerRoutes()
	return app
}

func corsConfig(cfg *config.AppConfig) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.IsDev() {
		corsConfig.AllowOriginFunc = allowOrigin(nil)
	} else {
		corsConfig.AllowOriginFunc = allowOrigin(cfg.AllowedOrigins)
	}
	return corsConfig
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the history store.
func (a *App) Shutdown() error { return a.store.Close() }

var processStart = time.Now()
