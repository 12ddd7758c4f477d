package routes

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/core/container"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/middleware"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter returns the engine with global middleware and every route
// registered.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(c.Logger))
	router.Use(middleware.RequestLogger(c.Logger.Named("http")))
	UseCORS(router, c.Config.Server.CORSAllowedOrigins)
	router.Use(middleware.TimeoutMiddleware(c.Config.Server.RequestTimeout))

	RegisterUtilityRoutes(router, c)
	RegisterPublicRoutes(router, c)
	RegisterProtectedRoutes(router, c)

	return router
}

// UseCORS allows the listed origins. Without origins every origin is allowed
// but credentials are not.
func UseCORS(router *gin.Engine, origins []string) {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	router.Use(cors.New(cfg))
}

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	public := router.Group("")

	c.LoginHandler.RegisterRoutes(public)
	c.UserHandler.RegisterPublicRoutes(public)
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protected := router.Group("")
	protected.Use(security.JWTMiddleware(c.JWT))
	protected.Use(middleware.TouchLastSeen(c.UserRepository, c.SeenThrottle, c.Logger.Named("last_seen")))

	c.UserHandler.RegisterRoutes(protected)
	c.CategoryHandler.RegisterRoutes(protected)
	c.AssetHandler.RegisterRoutes(protected)
	c.BorrowingHandler.RegisterRoutes(protected)
	c.DisposalHandler.RegisterRoutes(protected)
	c.MaintenanceHandler.RegisterRoutes(protected)
	c.ReportsHandler.RegisterRoutes(protected)
	c.StaffHandler.RegisterRoutes(protected)
	c.AuditLogHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/health", c.HealthChecker.Handler())
}
