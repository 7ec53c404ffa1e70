package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/seshego-consulting/portal_backend/cmd/docs"
	"github.com/seshego-consulting/portal_backend/internal/core/domain"
	portssvc "github.com/seshego-consulting/portal_backend/internal/core/ports/services"
	"github.com/seshego-consulting/portal_backend/internal/middleware"
	"github.com/seshego-consulting/portal_backend/pkg/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Endpoints any authenticated principal may use: own profile and the
	// onboarding form. Submitters hold no role yet, so no role gate here.
	registerUserRoutes(v1, services.User)
	registerOnboardingRoutes(v1, services)

	// Endpoints that need an approved profile
	portal := v1.Group("", middleware.RequireRole(services.User, domain.RoleAdmin, domain.RoleClient, domain.RoleEmployee))
	registerDocumentRoutes(portal, services)

	clients := v1.Group("", middleware.RequireRole(services.User, domain.RoleClient))
	registerEmployeeRoutes(clients, services.Employee)

	admin := v1.Group("/admin", middleware.RequireRole(services.User, domain.RoleAdmin))
	registerAdminOnboardingRoutes(admin, services)
	registerAdminDocumentRoutes(admin, services)
	registerAdminUserRoutes(admin, services.User)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
