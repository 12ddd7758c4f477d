package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthStatus struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// HealthChecker serves /health. Results are cached for cacheDuration so load
// balancers polling it do not hammer the database.
type HealthChecker struct {
	db            Pinger
	version       string
	startTime     time.Time
	cacheDuration time.Duration

	mu       sync.Mutex
	last     HealthStatus
	lastCode int
}

func NewHealthChecker(db Pinger, version string) *HealthChecker {
	return &HealthChecker{
		db:            db,
		version:       version,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.lastCode != 0 && time.Since(h.last.LastChecked) < h.cacheDuration {
			c.JSON(h.lastCode, h.last)
			return
		}

		status := HealthStatus{
			Status:      "ok",
			Database:    "ok",
			LastChecked: time.Now(),
			Uptime:      time.Since(h.startTime).Round(time.Second).String(),
			Version:     h.version,
		}
		code := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}

		h.last = status
		h.lastCode = code
		c.JSON(code, status)
	}
}
