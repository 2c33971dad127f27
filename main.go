// main.go - CodeQuest progression backend
package main

import (
	"log"
	"os"
	"time"

	"codequest/database"
	"codequest/handlers"
	"codequest/middleware"
	"codequest/services"
	"codequest/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedAll(db); err != nil {
		log.Fatalf("Failed to seed catalog data: %v", err)
	}

	// Stores
	users := store.NewUserStore(db)
	progress := store.NewProgressStore(db)
	sessions := store.NewSessionStore(db)
	achievements := store.NewAchievementStore(db)
	curriculum := store.NewCurriculumStore(db)

	// Services
	locks := services.NewUserLocks()
	tracker := services.NewProgressTracker(progress, sessions, curriculum)
	recorder := services.NewSessionRecorder(sessions)
	ledger := services.NewLedger(users, achievements)
	progression := services.NewProgressionService(db, users, achievements, tracker, recorder, ledger, locks)

	// Handlers
	authHandler := handlers.NewAuthHandler(users)
	progressHandler := handlers.NewProgressHandler(tracker, progression)
	sessionHandler := handlers.NewSessionHandler(recorder, progression)
	achievementHandler := handlers.NewAchievementHandler(achievements, progression)
	statsHandler := handlers.NewStatsHandler(users, tracker, recorder)
	leaderboardHandler := handlers.NewLeaderboardHandler(users)
	preferencesHandler := handlers.NewPreferencesHandler(users)
	subjectHandler := handlers.NewSubjectHandler(curriculum, tracker)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

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

	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/demo", authHandler.DemoLogin)
	authGroup.Post("/logout", authHandler.Logout)

	// User routes
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", authHandler.Me)
	userGroup.Get("/me/statistics", statsHandler.Statistics)
	userGroup.Get("/me/export", statsHandler.Export)
	userGroup.Get("/me/preferences", preferencesHandler.Get)
	userGroup.Put("/me/preferences", preferencesHandler.Save)

	// Curriculum routes
	subjectGroup := api.Group("/subjects")
	subjectGroup.Use(middleware.AuthMiddleware)
	subjectGroup.Get("/", subjectHandler.List)
	subjectGroup.Get("/:id", subjectHandler.Get)
	subjectGroup.Get("/:id/summary", progressHandler.SubjectSummary)

	// Progress routes
	progressGroup := api.Group("/progress")
	progressGroup.Use(middleware.AuthMiddleware)
	progressGroup.Get("/", progressHandler.List)
	progressGroup.Put("/", progressHandler.Upsert)
	progressGroup.Post("/quiz", progressHandler.CompleteQuiz)

	// Session routes
	sessionGroup := api.Group("/sessions")
	sessionGroup.Use(middleware.AuthMiddleware)
	sessionGroup.Get("/", sessionHandler.List)
	sessionGroup.Post("/", sessionHandler.Start)
	sessionGroup.Post("/:id/complete", sessionHandler.Complete)

	// Progression routes
	progressionGroup := api.Group("/progression")
	progressionGroup.Use(middleware.AuthMiddleware)
	progressionGroup.Get("/", statsHandler.Progression)
	progressionGroup.Get("/achievements", achievementHandler.List)
	progressionGroup.Post("/achievements/check", achievementHandler.Check)

	// Leaderboard routes
	api.Get("/leaderboard", leaderboardHandler.List)

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

	if os.Getenv("APP_ENV") == "production" {
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
