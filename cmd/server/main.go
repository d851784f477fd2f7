package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/storefront-api/internal/config"
	"github.com/storefront-api/internal/handler"
	"github.com/storefront-api/internal/mailer"
	"github.com/storefront-api/internal/middleware"
	"github.com/storefront-api/internal/models"
	"github.com/storefront-api/internal/repository"
	"github.com/storefront-api/internal/service"
	"github.com/storefront-api/internal/storage"
	"github.com/storefront-api/pkg/response"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Build info (injected at build time via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)
	response.SetReleaseMode(cfg.Server.Mode == "release")

	// Initialize logging
	if err := middleware.InitLogger("logs"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis
	rdb := initRedis(cfg)

	// Auto migrate database
	if err := autoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize blob storage
	store, err := storage.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	cssRepo := repository.NewCustomCSSRepository(db)

	// Initialize services
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTP)
	authService := service.NewAuthService(userRepo, smtpMailer, cfg.JWT)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, store)
	categoryService := service.NewCategoryService(categoryRepo, productService)
	settingsService := service.NewSettingsService(settingsRepo, store)
	mediaService := service.NewMediaService(mediaRepo, store)
	statsService := service.NewStatsService(productRepo, categoryRepo, userRepo, rdb)
	cssService := service.NewCustomCSSService(cssRepo)

	// Make sure the settings singleton exists
	if err := settingsService.Initialize(); err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService, userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	statsHandler := handler.NewStatsHandler(statsService)
	cssHandler := handler.NewCustomCSSHandler(cssService)
	uploadHandler := handler.NewUploadHandler(store)

	// Create Gin router
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware())

	// Uploaded blobs are served statically
	router.Static(storage.URLPrefix, store.Dir())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ok",
			"version":    Version,
			"commit":     Commit,
			"build_time": BuildTime,
			"time":       time.Now().Unix(),
		})
	})

	// API routes
	api := router.Group("/api")
	protect := middleware.Protect(authService)
	{
		userHandler.RegisterRoutes(api, protect)
		productHandler.RegisterRoutes(api, protect)
		categoryHandler.RegisterRoutes(api, protect)
		settingsHandler.RegisterRoutes(api, protect)
		mediaHandler.RegisterRoutes(api, protect)
		statsHandler.RegisterRoutes(api, protect)
		cssHandler.RegisterRoutes(api, protect)
		uploadHandler.RegisterRoutes(api, protect)
	}

	// Unknown routes get the same error shape as everything else
	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "not found - "+c.Request.URL.Path)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 10 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		}
	}

	log.Println("Server exited properly")
}

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.Server.Mode == "release" {
		gormLogger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormLogger,
		// Unique-constraint violations surface as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Settings{},
		&models.Media{},
		&models.CustomCSS{},
	)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
