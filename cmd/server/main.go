package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"donation-tracker-backend/internal/config"
	"donation-tracker-backend/internal/handlers"
	"donation-tracker-backend/internal/realtime"
	"donation-tracker-backend/internal/repositories"
	"donation-tracker-backend/internal/services"
	"donation-tracker-backend/pkg/database"
	"donation-tracker-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	// Initialize repositories
	repo := repositories.NewRepository(db)

	// Change feed shared by services and the SSE endpoint
	feed := realtime.NewFeed()

	// Initialize services
	authSvc := services.NewAuthService(repo, cfg)
	eventSvc := services.NewEventService(repo, feed, cfg)
	donationSvc := services.NewDonationService(repo, feed, cfg)
	envelopeSvc := services.NewEnvelopeService(repo, feed, cfg)
	ledgerSvc := services.NewLedgerService(repo, feed, cfg)
	operatorSvc := services.NewOperatorService(repo, cfg)

	// Initialize handlers
	handler := handlers.NewHandler(authSvc, eventSvc, donationSvc, envelopeSvc, ledgerSvc, operatorSvc, feed, cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Donation Tracker API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Register routes
	api := app.Group("/api")
	handler.RegisterRoutes(api)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("🚀 Server starting on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped gracefully")
}
