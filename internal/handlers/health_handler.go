package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a plain function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	environment string
	startedAt   time.Time
	db          Pinger
}

func NewHealthHandler(environment string, db Pinger) *HealthHandler {
	return &HealthHandler{environment: environment, startedAt: time.Now(), db: db}
}

// Check always answers 200 while the process is up; the database state is informational.
func (h *HealthHandler) Check(c *gin.Context) {
	database := "connected"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			database = "disconnected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Server is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startedAt).Seconds(),
		"environment": h.environment,
		"database":    database,
	})
}
