package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"storefront-catalog-service/internal/config"
	"storefront-catalog-service/internal/events"
	"storefront-catalog-service/internal/feed"
	"storefront-catalog-service/internal/handlers"
	"storefront-catalog-service/internal/middleware"
	"storefront-catalog-service/internal/models"
	"storefront-catalog-service/internal/repository"
	"storefront-catalog-service/internal/services"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Connect to database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.Product{},
		&models.SyncAudit{},
	); err != nil {
		logger.Warnf("Auto-migration failed: %v", err)
	}
	logger.Info("Database models migrated")

	// Redis is an optional read cache; the service degrades to direct
	// database reads without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warnf("Invalid REDIS_URL, caching disabled: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				logger.Warnf("Redis unreachable, caching disabled: %v", err)
				redisClient = nil
			} else {
				logger.Info("Redis cache connected")
			}
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db, redisClient)
	syncRepo := repository.NewSyncRepository(db)

	// Initialize services
	feedClient := feed.NewClient(cfg.FeedBaseURL, cfg.FeedSegment, cfg.FeedDateRange)
	syncService := services.NewSyncService(productRepo, syncRepo, feedClient, logger)
	catalogService := services.NewCatalogService(productRepo, logger)

	// NATS is optional; sync events are only published when a broker is
	// configured.
	if cfg.NATSURL != "" {
		publisher, err := events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			logger.Warnf("NATS unreachable, sync events disabled: %v", err)
		} else {
			defer publisher.Close()
			syncService.SetPublisher(publisher)
			logger.Info("NATS event publisher connected")
		}
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	productsHandler := handlers.NewProductsHandler(catalogService)
	syncHandler := handlers.NewSyncHandler(syncService, syncRepo, productRepo)

	// Periodic sync, when enabled
	if cfg.SyncInterval > 0 {
		go runPeriodicSync(syncService, cfg.SyncInterval, logger)
	}

	// Setup router
	router := setupRouter(cfg, healthHandler, productsHandler, syncHandler)

	// Start server
	logger.Infof("Storefront Catalog Service starting on port %s (env: %s)", cfg.Port, cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// runPeriodicSync triggers a sync run on a fixed interval. Overlap is
// handled inside the service, so a slow run simply makes the next tick a
// no-op.
func runPeriodicSync(syncService *services.SyncService, interval time.Duration, logger *logrus.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Infof("Periodic sync enabled every %s", interval)
	for range ticker.C {
		syncService.Run(context.Background())
	}
}

// setupRouter configures the HTTP router
func setupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	productsHandler *handlers.ProductsHandler,
	syncHandler *handlers.SyncHandler,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Security headers middleware
	router.Use(middleware.SecurityHeaders())

	// CORS middleware
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{
			"http://localhost:3000",
			"http://localhost:3001",
		}
	}
	router.Use(middleware.CORS(origins))

	// Health check
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		// Storefront product reads
		products := v1.Group("/products")
		{
			products.GET("", productsHandler.List)
			products.GET("/featured", productsHandler.Featured)
			products.GET("/almost-sold-out", productsHandler.AlmostSoldOut)
			products.GET("/category/:category", productsHandler.ListByCategory)
			products.GET("/:reference", productsHandler.Get)
		}

		v1.GET("/categories", productsHandler.Categories)

		// Sync triggers and audit history
		sync := v1.Group("/sync")
		{
			sync.POST("", syncHandler.Trigger)
			sync.POST("/full", syncHandler.TriggerFull)
			sync.GET("/status", syncHandler.Status)
			sync.GET("/history", syncHandler.History)
		}

		v1.GET("/admin/stats", syncHandler.AdminStats)
	}

	return router
}
