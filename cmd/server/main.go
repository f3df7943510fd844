package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adota-pet/service-adoption/internal/application"
	"github.com/adota-pet/service-adoption/internal/auth"
	"github.com/adota-pet/service-adoption/internal/config"
	"github.com/adota-pet/service-adoption/internal/database"
	"github.com/adota-pet/service-adoption/internal/events"
	"github.com/adota-pet/service-adoption/internal/handler"
	"github.com/adota-pet/service-adoption/internal/health"
	"github.com/adota-pet/service-adoption/internal/logger"
	"github.com/adota-pet/service-adoption/internal/middleware"
	"github.com/adota-pet/service-adoption/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-adoption")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-adoption",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.PetModel{},
			&repository.AdopterModel{},
			&repository.RequestModel{},
			&repository.AdoptionModel{},
		)
		if err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DB.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Ensure the upload directory exists before serving from it
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = producer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	petRepo := repository.NewGormPetRepository(db)
	adopterRepo := repository.NewGormAdopterRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)
	adoptionRepo := repository.NewGormAdoptionRepository(db)
	txManager := repository.NewGormTxManager(db)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, cfg.AdminKey, log)
	petService := application.NewPetService(petRepo, log)
	adopterService := application.NewAdopterService(adopterRepo, log)
	adoptionService := application.NewAdoptionService(
		txManager,
		requestRepo,
		adoptionRepo,
		petRepo,
		adopterRepo,
		producer,
		log,
	)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	petHandler := handler.NewPetHandler(petService, cfg.UploadDir)
	adopterHandler := handler.NewAdopterHandler(adopterService)
	adoptionHandler := handler.NewAdoptionHandler(adoptionService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-adoption")
	healthHandler.RegisterRoutes(router)

	// Serve uploaded pet images
	router.Static("/uploads", cfg.UploadDir)

	// Register routes
	authHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	petHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adopterHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adoptionHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-adoption...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-adoption stopped")
}
