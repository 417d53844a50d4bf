// Package main is the entry point for the POS backend API.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/jbalums/benta-flow-api/docs"
	"github.com/jbalums/benta-flow-api/internal/config"
	"github.com/jbalums/benta-flow-api/internal/events"
	"github.com/jbalums/benta-flow-api/internal/handlers"
	"github.com/jbalums/benta-flow-api/internal/metrics"
	"github.com/jbalums/benta-flow-api/internal/repository"
	"github.com/jbalums/benta-flow-api/internal/routes"
	"github.com/jbalums/benta-flow-api/internal/service"
	"github.com/jbalums/benta-flow-api/pkg/database"
	"github.com/jbalums/benta-flow-api/pkg/obs"
	"github.com/jbalums/benta-flow-api/pkg/redis"
)

// @title Benta POS API
// @version 1.0
// @description Point-of-sale administrative backend: authentication, stores, branches, products and users
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Tracing is opt-in
	if cfg.OTLPEndpoint != "" {
		shutdown, err := obs.InitTracer(context.Background(), "benta-api", cfg.OTLPEndpoint, cfg.Environment)
		if err != nil {
			log.Fatal("Failed to init tracing:", err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Event publishing is opt-in
	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal("Failed to connect to message broker:", err)
		}
		defer publisher.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Initialize services
	tokenService := service.NewTokenService(tokenRepo, redisClient, cfg.TokenCacheTTL)
	googleVerifier := service.NewGoogleVerifier(cfg.GoogleClientID)
	authService := service.NewAuthService(userRepo, storeRepo, tokenService, googleVerifier, publisher)

	// Metrics
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize handlers
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, m),
		Users:    handlers.NewUserHandler(userRepo),
		Branches: handlers.NewBranchHandler(branchRepo),
		Products: handlers.NewProductHandler(productRepo),
		Category: handlers.NewCategoryHandler(categoryRepo),
		Health:   handlers.NewHealthHandler(db, redisClient),
	}

	// Setup router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	routes.Setup(router, h, cfg, m, tokenService, userRepo)

	log.Printf("Starting benta-flow-api on port %s", cfg.Port)
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
