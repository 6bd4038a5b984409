package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sportstore/internal/cache"
	"sportstore/internal/config"
	"sportstore/internal/handlers"
	"sportstore/internal/middleware"
	"sportstore/internal/models"
	"sportstore/internal/repositories"
	"sportstore/internal/services"
	"sportstore/pkg/imagestore"
	"sportstore/pkg/rabbitmq"
)

const offersCacheTTL = 30 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.BasketItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Image store ---
	images, err := imagestore.New(cfg.ImageDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// --- RabbitMQ client ---
	// The catalog works without a broker; events are then skipped.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, catalog events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Redis special-offers cache ---
	var offersCache *cache.OffersCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		offersCache = cache.NewOffersCache(rdb, offersCacheTTL)
		defer rdb.Close()
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	basketRepo := repositories.NewGORMBasketRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.AdminSignupKey)
	productService := services.NewProductService(productRepo, images, offersCache, mqClient)
	basketService := services.NewBasketService(basketRepo, productRepo, mqClient)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(productService)
	basketHandler := handlers.NewBasketHandler(basketService)
	adminHandler := handlers.NewAdminHandler(productService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- Static assets (uploaded product images) ---
	app.Static("/static/img", images.Dir())

	// --- Routes ---
	// Public browsing and authentication
	catalogHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)

	// Basket requires a signed-in user
	basketRoutes := app.Group("", middleware.AuthRequired(authService))
	basketHandler.RegisterRoutes(basketRoutes)

	// Product management requires an admin
	adminRoutes := app.Group("", middleware.AuthRequired(authService), middleware.AdminRequired())
	adminHandler.RegisterRoutes(adminRoutes)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for catalog events; a deployment can point a search indexer or
	// stock alerting at the same queue.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for catalog events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received catalog event %s (Tag: %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeCatalogEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
