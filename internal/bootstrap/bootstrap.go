package bootstrap

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/samcomo/dbz-api-server/internal/config"
	sharedError "github.com/samcomo/dbz-api-server/internal/shared/error"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
	"github.com/samcomo/dbz-api-server/internal/shared/middleware"
)

// Bootstrap builds the gin engine and its common middleware chain
type Bootstrap struct {
	cfg *config.Config
}

func NewBootstrap(cfg *config.Config) *Bootstrap {
	return &Bootstrap{
		cfg: cfg,
	}
}

// SetupEngine creates a gin engine with request id, logging, recovery, CORS and timeout middleware.
// Routes are registered separately by router.Setup.
func (b *Bootstrap) SetupEngine() *gin.Engine {
	if b.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Disable Gin's default logger (using slog)
	gin.DefaultWriter = io.Discard
	gin.DefaultErrorWriter = io.Discard

	engine := gin.New()

	// 프로필 이미지 최대 크기까지만 메모리에 두고 나머지는 임시 파일로
	engine.MaxMultipartMemory = b.cfg.ProfileImage.MaxSizeBytes

	// RequestLogger must run before recovery so panics are logged with request_id
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger())
	engine.Use(gin.CustomRecovery(b.recoveryHandler))
	engine.Use(middleware.CORS(b.cfg))
	engine.Use(middleware.Timeout(b.cfg.Server.RequestTimeout))

	return engine
}

func (b *Bootstrap) recoveryHandler(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error("Panic Recovered",
		"panic", recovered,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.AbortWithStatusJSON(sharedError.InternalServerError.Status, sharedError.InternalServerError)
}
