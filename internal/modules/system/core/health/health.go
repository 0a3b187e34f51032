package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const pingTimeout = 3 * time.Second

// Pinger is satisfied by the history store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func RegisterRoutes(rg *gin.RouterGroup, store Pinger, logger *zap.Logger) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		storeOK := true
		if err := store.Ping(ctx); err != nil {
			storeOK = false
			logger.Warn("history store ping failed", zap.Error(err))
		}

		status := "ok"
		code := http.StatusOK
		if !storeOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":  status,
			"storage": storeOK,
		})
	})
}
