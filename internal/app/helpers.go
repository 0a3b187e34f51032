package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mx-space/docinsight/internal/config"
)

func applyRuntimeSettings(cfg *config.AppConfig) {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
		gin.DebugPrintRouteFunc = func(string, string, string, int) {}
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

func logSummarizerMode(logger *zap.Logger, cfg config.SummarizerConfig) {
	enabled := cfg.APIKey != "" && (cfg.BaseURL != "" || cfg.Provider != config.SummarizerGeneric)
	if !enabled {
		logger.Info("remote summarizer not configured, insights use keyword fallback")
		return
	}
	logger.Info("remote summarizer enabled",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout()),
	)
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
