package meta

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samcomo/dbz-api-server/internal/config"
	"github.com/samcomo/dbz-api-server/internal/shared/database"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
)

const healthCheckTimeout = 5 * time.Second

// Handler serves the health endpoint
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

// Health pings the database. Object storage is reported from configuration only:
// a failed upload already surfaces as PROFILE_IMAGE_NOT_UPLOADED.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status, code := "healthy", http.StatusOK
	databaseCheck := h.checkDatabase(ctx)
	if databaseCheck["status"] != "up" {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status": status,
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": gin.H{
			"database": databaseCheck,
			"storage": gin.H{
				"provider": h.cfg.Storage.Provider,
				"bucket":   h.cfg.Storage.Bucket,
			},
		},
	})
}

func (h *Handler) checkDatabase(ctx context.Context) gin.H {
	start := time.Now()
	if err := h.db.HealthCheck(ctx); err != nil {
		logger.FromContext(ctx).Error("Health check 실패", "driver", h.cfg.Database.Driver, "error", err)
		return gin.H{
			"driver": h.cfg.Database.Driver,
			"status": "down",
			"error":  err.Error(),
		}
	}

	return gin.H{
		"driver":     h.cfg.Database.Driver,
		"status":     "up",
		"latency_ms": time.Since(start).Milliseconds(),
	}
}
