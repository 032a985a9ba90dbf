package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
)

// Pinger reports whether the backing store answers.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
	log  zerolog.Logger
}

func NewHealthHandler(ping Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, log: log}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.ping != nil {
		if err := h.ping(ctx); err != nil {
			h.log.Warn().Err(err).Msg("health check failed")
			httperr.Unavailable(c, "store_unavailable", "Service temporarily unavailable. Please try again.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
