package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"ozzus/ping-monitor/internal/api/http/middleware"
)

func NewRouter(healthController *HealthController, log *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))

	router.GET("/health", healthController.Health)
	router.GET("/status", healthController.Status)
	router.GET("/ready", healthController.Ready)

	return router
}
