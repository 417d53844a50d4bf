// Package routes defines HTTP routes for the POS backend.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jbalums/benta-flow-api/docs"
	"github.com/jbalums/benta-flow-api/internal/config"
	"github.com/jbalums/benta-flow-api/internal/handlers"
	"github.com/jbalums/benta-flow-api/internal/metrics"
	"github.com/jbalums/benta-flow-api/internal/middleware"
	"github.com/jbalums/benta-flow-api/internal/models"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/jbalums/benta-flow-api/internal/service"
)

// Handlers groups everything Setup needs to register routes.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Branches *handlers.BranchHandler
	Products *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Health   *handlers.HealthHandler
}

// Setup configures all HTTP routes for the application.
func Setup(
	router *gin.Engine,
	h Handlers,
	cfg *config.Config,
	m *metrics.Metrics,
	tokens service.TokenService,
	users repository.UserRepository,
) {
	router.Use(middleware.RequestID())
	router.Use(m.Middleware())

	// Health check
	router.GET("/health", h.Health.Check)
	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public auth routes
	api.POST("/auth/signup", h.Auth.Signup)
	api.POST("/auth/signup/google", h.Auth.GoogleSignup)
	api.POST("/auth/login", h.Auth.Login)

	// Routes behind bearer authentication
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokens, users))
	{
		authed.GET("/auth/me", h.Auth.Me)
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.POST("/auth/store-details", h.Auth.StoreDetails)
	}

	// Administrative CRUD requires an elevated role
	admin := api.Group("")
	admin.Use(middleware.RequireAuth(tokens, users))
	admin.Use(middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
	{
		registerResource(admin, "/users", resource{
			index: h.Users.Index, store: h.Users.Store, show: h.Users.Show,
			update: h.Users.Update, destroy: h.Users.Destroy,
		})
		registerResource(admin, "/branches", resource{
			index: h.Branches.Index, store: h.Branches.Store, show: h.Branches.Show,
			update: h.Branches.Update, destroy: h.Branches.Destroy,
		})
		registerResource(admin, "/products", resource{
			index: h.Products.Index, store: h.Products.Store, show: h.Products.Show,
			update: h.Products.Update, destroy: h.Products.Destroy,
		})
		registerResource(admin, "/product-categories", resource{
			index: h.Category.Index, store: h.Category.Store, show: h.Category.Show,
			update: h.Category.Update, destroy: h.Category.Destroy,
		})
	}

	// Swagger documentation (only if SWAGGER_HOST is configured)
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

type resource struct {
	index, store, show, update, destroy gin.HandlerFunc
}

func registerResource(group *gin.RouterGroup, path string, r resource) {
	group.GET(path, r.index)
	group.POST(path, r.store)
	group.GET(path+"/:id", r.show)
	group.PUT(path+"/:id", r.update)
	group.PATCH(path+"/:id", r.update)
	group.DELETE(path+"/:id", r.destroy)
}
