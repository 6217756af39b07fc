package routes

import (
	"simplekyc/internal/adapters/directory"
	"simplekyc/internal/adapters/http/handlers"
	"simplekyc/internal/adapters/http/middleware"
	"simplekyc/internal/adapters/persistence/repositories"
	"simplekyc/internal/config"
	"simplekyc/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and returns the
// wired services the server needs outside the request path.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	tokenRepo := repositories.NewSessionTokenRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	personalRepo := repositories.NewPersonalInfoRepository(db)

	// Upstream directory client
	directoryClient := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.TimeoutSeconds)

	// Initialize services
	sessionService := services.NewSessionService(directoryClient, tokenRepo, cfg)
	userService := services.NewUserService(directoryClient, personalRepo)
	reviewService := services.NewReviewService(reviewRepo, directoryClient)
	kycService := services.NewKYCService(kycRepo, directoryClient)
	cronService := services.NewCronService(sessionService, reviewService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(sessionService)
	userHandler := handlers.NewUserHandler(userService)
	kycHandler := handlers.NewKYCHandler(kycService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User routes (authenticated; listing is officer only, subject
	// routes are owner-or-officer)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler, kycHandler)

	// Review routes (officer only)
	reviewRoutes := apiV1.Group("/review")
	reviewRoutes.Use(middleware.AuthMiddleware(cfg))
	reviewRoutes.Use(middleware.OfficerOnly())
	setupReviewRoutes(reviewRoutes, reviewHandler)

	return cronService
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited: every attempt hits the directory)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Post("/logout", middleware.AuthMiddleware(cfg), handler.Logout)
	router.Post("/logout/all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures user and KYC routes
func setupUserRoutes(router fiber.Router, userHandler *handlers.UserHandler, kycHandler *handlers.KYCHandler) {
	// Listing is officer only
	router.Get("/", middleware.OfficerOnly(), userHandler.ListUsers)

	// Subject-scoped routes: owner or officer
	subject := router.Group("/:id")
	subject.Use(middleware.OwnProfileOnly())

	subject.Get("/", userHandler.GetUser)
	subject.Get("/personal-info", userHandler.GetPersonalInfo)
	subject.Put("/personal-info", userHandler.SavePersonalInfo)

	// KYC form
	subject.Get("/kyc", kycHandler.GetForm)
	subject.Get("/kyc/totals", kycHandler.GetTotals)
	subject.Patch("/kyc/fields", kycHandler.UpdateField)
	subject.Post("/kyc/sections/:section/rows", kycHandler.AddRow)
	subject.Delete("/kyc/sections/:section/rows/:index", kycHandler.RemoveRow)
	subject.Post("/kyc/submit", kycHandler.Submit)
}

// setupReviewRoutes configures officer review routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler) {
	router.Get("/", handler.Queue)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Decide)

	// Clearing the ledger is destructive, so rate limit it hard
	router.Delete("/", middleware.StrictRateLimiter(), handler.Clear)
}
