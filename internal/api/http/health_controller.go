package http

import (
	"net/http"
	"time"

	"ozzus/ping-monitor/internal/domain"
	"ozzus/ping-monitor/internal/service"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	monitor *service.MonitorService
}

func NewHealthController(monitor *service.MonitorService) *HealthController {
	return &HealthController{monitor: monitor}
}

// Health reports whether the monitor loop is alive.
func (h *HealthController) Health(c *gin.Context) {
	if err := h.monitor.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, domain.HealthResponse{
			Status:    domain.HealthStatusUnhealthy,
			Timestamp: time.Now(),
			Message:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.HealthResponse{
		Status:    domain.HealthStatusHealthy,
		Timestamp: time.Now(),
		Message:   "monitor is running",
	})
}

// Status returns a snapshot of the loop state: cycle counter, target count
// and the time of the last completed cycle.
func (h *HealthController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.GetStatus())
}

// Ready mirrors Health; the monitor has no warm-up phase beyond its first
// cycle.
func (h *HealthController) Ready(c *gin.Context) {
	if err := h.monitor.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not_ready",
			"message":   err.Error(),
			"timestamp": time.Now(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}
