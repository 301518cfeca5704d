package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/cache"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/handlers"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/middleware"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/repository"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/service"
	"github.com/Footprint-meow/Footprint-BackEnd/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Footprint Backend",
		// Support photo uploads up to 5MB + overhead.
		BodyLimit: 8 * 1024 * 1024, // 8MB
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	footprintCache := cache.NewFootprintCache(redisCache)

	// Initialize repositories
	guestbookRepo := repository.NewGuestbookRepository(db)
	footprintRepo := repository.NewFootprintRepository(db)

	// Initialize services
	footprintService := service.NewFootprintService(footprintRepo, guestbookRepo, service.NewBcryptHasher())

	// Initialize S3/MinIO storage (best-effort; photo endpoints return 503 if missing)
	var s3Store *storage.S3Storage
	if cfg, err := storage.LoadS3ConfigFromEnv(); err != nil {
		log.Printf("WARNING: S3 storage not configured: %v", err)
	} else if st, err := storage.NewS3Storage(cfg); err != nil {
		log.Printf("WARNING: Failed to initialize S3 storage: %v", err)
	} else {
		s3Store = st
		log.Printf("S3 storage initialized successfully (bucket=%s)", cfg.Bucket)
	}

	// Initialize handlers
	wsHandler := handlers.NewWebSocketHandler()
	footprintHandler := handlers.NewFootprintHandler(footprintService, footprintCache, wsHandler.GetHub())
	photoHandler := handlers.NewPhotoHandler(footprintService, s3Store)

	api := app.Group("/api")

	// Footprint creation is open to anonymous visitors; keep it rate limited.
	writeLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	})

	api.Post("/footprints", writeLimiter, footprintHandler.CreateFootprint)
	api.Post("/footprints/:id", middleware.AuthOptional(), footprintHandler.GetSecretFootprint)
	api.Delete("/footprints/:id", middleware.AuthOptional(), footprintHandler.DeleteFootprint)
	api.Post("/footprints/:id/read", middleware.AuthOptional(), footprintHandler.ReadCheckFootprint)
	api.Get("/guestbooks/:id/footprints", footprintHandler.GetFootprintListByDate)

	api.Post("/footprints/:id/photo", writeLimiter, photoHandler.UploadPhoto)
	api.Post("/footprints/:id/photo/view", middleware.AuthOptional(), photoHandler.GetPhoto)

	// WebSocket route (websocket upgrade needs special handling)
	app.Use(
		"/ws",
		middleware.AuthRequired(),
		func(c *fiber.Ctx) error {
			// Upgrade to WebSocket
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Footprint backend is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
