package router

import (
	"github.com/gin-gonic/gin"
	"github.com/samcomo/dbz-api-server/internal/auth"
	"github.com/samcomo/dbz-api-server/internal/config"
	"github.com/samcomo/dbz-api-server/internal/member"
	"github.com/samcomo/dbz-api-server/internal/meta"
	"github.com/samcomo/dbz-api-server/internal/shared/database"
	"github.com/samcomo/dbz-api-server/internal/shared/middleware"
	"github.com/samcomo/dbz-api-server/internal/shared/password"
	"github.com/samcomo/dbz-api-server/internal/shared/storage"
	"github.com/samcomo/dbz-api-server/internal/shared/token"
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, imageStore storage.ImageStore) {
	// Meta handler (health check, app version, legal documents)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// repository
	memberRepository := member.NewMemberRepository(db.DB)

	// shared services
	tokenManager := token.NewJWTManager(cfg)
	passwordHasher := password.NewBcryptHasher(cfg.Password.BcryptCost)

	// service
	authService := auth.NewAuthService(memberRepository, passwordHasher, tokenManager)
	memberService := member.NewMemberService(memberRepository, passwordHasher, imageStore)

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService, cfg)

	// API v1 routes
	authV1 := router.Group("/api/v1/auth")
	{
		authV1.POST("/login", authHandler.Login)
	}

	publicMemberV1 := router.Group("/api/v1/members")
	{
		publicMemberV1.POST("/register", memberHandler.Register)
	}

	memberV1 := router.Group("/api/v1/members")
	memberV1.Use(middleware.JWT(cfg))
	{
		memberV1.GET("/me", memberHandler.GetMyInfo)
		memberV1.PUT("/location", memberHandler.UpdateLocation)
		memberV1.PUT("/profile-image", memberHandler.UpdateProfileImage)
	}
}
