package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/database"
)

// CachePinger checks the cache connection
type CachePinger interface {
	Ping(ctx context.Context) error
}

// Health handles GET /health, checking the database and the cache
func Health(db database.Pinger, cache CachePinger, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok", "cache": "ok"}
		status := http.StatusOK
		state := "healthy"

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				// the cache falls back to the database, so it only degrades
				checks["cache"] = err.Error()
				state = "degraded"
			}
		}

		if status != http.StatusOK {
			state = "unhealthy"
		}

		c.JSON(status, gin.H{
			"status":    state,
			"version":   version,
			"checks":    checks,
			"timestamp": time.Now().UTC(),
		})
	}
}
