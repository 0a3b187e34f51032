package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mx-space/docinsight/internal/modules/insight"
	"github.com/mx-space/docinsight/internal/modules/system/core/health"
	"github.com/mx-space/docinsight/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	appInfo := gin.H{
		"name":    "docinsight",
		"version": "1.0.0",
	}

	root := r.Group("")
	root.GET("/", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	root.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	health.RegisterRoutes(root, a.store, a.logger)
	insight.NewHandler(a.svc, a.cfg.MaxUploadBytes()).RegisterRoutes(root)
}
