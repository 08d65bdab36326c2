// main.go
package main

import (
	"log"
	"os"
	"time"

	"predictplay/database"
	"predictplay/handlers"
	"predictplay/middleware"
	"predictplay/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database and caches
	database.InitDB()
	database.InitRedis()

	// Object storage for avatar uploads; the server runs without it
	if err := services.InitStorage(); err != nil {
		log.Printf("Warning: object storage not configured: %v", err)
	}

	// Wire handler services
	handlers.InitHandlers()

	// Background retention sweeper
	services.InitSweeper(database.GetDB())
	defer func() {
		if sweeper := services.GetSweeper(); sweeper != nil {
			sweeper.Stop()
		}
	}()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/guest", handlers.GuestLogin)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/change-password", middleware.AuthMiddleware, handlers.ChangePassword)

	// User routes (require authentication)
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)
	userGroup.Get("/stats", handlers.GetUserStats)
	userGroup.Post("/avatar", handlers.UploadAvatar)

	// Group routes
	groupGroup := api.Group("/groups")
	groupGroup.Use(middleware.AuthMiddleware)
	groupGroup.Post("/", handlers.CreateGroup)
	groupGroup.Post("/join", handlers.JoinGroup)
	groupGroup.Post("/close", handlers.CloseGroup)
	groupGroup.Post("/leave", handlers.LeaveGroup)
	groupGroup.Get("/me", handlers.GetMyGroup)
	groupGroup.Get("/leaderboard", handlers.GetGroupLeaderboard)
	groupGroup.Put("/game", handlers.SetGroupGame)
	groupGroup.Get("/:code", handlers.GetGroupByCode)

	// Game routes; writes are gamemaster only
	gameGroup := api.Group("/games")
	gameGroup.Use(middleware.AuthMiddleware)
	gameGroup.Get("/", handlers.ListActiveGames)
	gameGroup.Get("/templates", handlers.ListQuestionTemplates)
	gameGroup.Get("/:id", handlers.GetGame)
	gameGroup.Get("/:id/question", handlers.GetCurrentQuestion)
	gameGroup.Post("/", middleware.GamemasterMiddleware, handlers.CreateGame)
	gameGroup.Post("/:id/end", middleware.GamemasterMiddleware, handlers.EndGame)

	// Question routes; all gamemaster only
	questionGroup := api.Group("/questions")
	questionGroup.Use(middleware.AuthMiddleware, middleware.GamemasterMiddleware)
	questionGroup.Post("/", handlers.CreateQuestion)
	questionGroup.Post("/:id/close", handlers.CloseQuestion)
	questionGroup.Post("/:id/answer", handlers.SetAnswer)

	// Prediction routes
	predictionGroup := api.Group("/predictions")
	predictionGroup.Use(middleware.AuthMiddleware)
	predictionGroup.Post("/", handlers.SubmitPrediction)
	predictionGroup.Get("/:questionId", handlers.GetMyGuess)

	// Leaderboard routes
	leaderboardGroup := api.Group("/leaderboard")
	leaderboardGroup.Get("/", handlers.GetGlobalLeaderboard)
	leaderboardGroup.Get("/me", middleware.AuthMiddleware, handlers.GetMyRank)

	// Live feed over websocket
	app.Use("/ws", middleware.WebSocketAuthMiddleware)
	app.Get("/ws", websocket.New(handlers.LiveFeed))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 Live feed available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
