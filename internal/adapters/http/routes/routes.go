package routes

import (
	"fitconnect/internal/adapters/http/handlers"
	"fitconnect/internal/adapters/http/middleware"
	"fitconnect/internal/adapters/persistence/repositories"
	"fitconnect/internal/config"
	"fitconnect/internal/core/services"
	"fitconnect/internal/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	trainerRepo := repositories.NewTrainerRepository(db)
	memberRepo := repositories.NewMemberRepository(db)
	planRepo := repositories.NewMembershipPlanRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	friendRequestRepo := repositories.NewFriendRequestRepository(db)
	sessionStore := repositories.NewSessionStateRepository(db)

	// One session authority per process
	sessions := session.New(sessionStore)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, trainerRepo, memberRepo, membershipRepo, sessions, cfg)
	userService := services.NewUserService(userRepo, trainerRepo, memberRepo, planRepo, membershipRepo, paymentRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, trainerRepo, memberRepo)
	socialService := services.NewSocialService(friendRequestRepo, memberRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	socialHandler := handlers.NewSocialHandler(socialService, assignmentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, assignmentService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		assignmentHandler, socialHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	assignmentHandler *handlers.AssignmentHandler,
	socialHandler *handlers.SocialHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public, tighter rate limit)
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/session", middleware.AuthMiddleware(cfg), authHandler.Session)

	// Membership plans (public)
	router.Get("/plans", userHandler.ListPlans)

	// User management routes (Admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Put("/me/password", userHandler.ChangePassword)
	userRoutes.Get("/", middleware.AdminOnly(), userHandler.ListUsers)
	userRoutes.Get("/:id", middleware.AdminOnly(), userHandler.GetUser)
	userRoutes.Put("/:id/status", middleware.AdminOnly(), userHandler.SetUserStatus)
	userRoutes.Post("/members", middleware.AdminOnly(), userHandler.RegisterMember)
	userRoutes.Post("/trainers", middleware.AdminOnly(), userHandler.RegisterTrainer)

	// Trainer listing (any authenticated user)
	router.Get("/trainers", middleware.AuthMiddleware(cfg), assignmentHandler.ListTrainers)

	// Assignment routes
	assignmentRoutes := router.Group("/assignments")
	assignmentRoutes.Use(middleware.AuthMiddleware(cfg))
	assignmentRoutes.Post("/", middleware.AdminOnly(), assignmentHandler.Assign)
	assignmentRoutes.Get("/my-trainer", middleware.MemberOnly(), assignmentHandler.MyTrainer)
	assignmentRoutes.Get("/my-clients", middleware.TrainerOrAdmin(), assignmentHandler.MyClients)
	router.Get("/members/:id/trainer", middleware.AuthMiddleware(cfg), middleware.TrainerOrAdmin(), assignmentHandler.MemberTrainer)

	// Social routes (Members only)
	friendRoutes := router.Group("/friends")
	friendRoutes.Use(middleware.AuthMiddleware(cfg), middleware.MemberOnly())
	friendRoutes.Get("/", socialHandler.Friends)
	friendRoutes.Get("/requests", socialHandler.PendingRequests)
	friendRoutes.Post("/requests", socialHandler.SendRequest)
	friendRoutes.Put("/requests/:id", socialHandler.Respond)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/admin", middleware.AdminOnly(), dashboardHandler.AdminDashboard)
	dashboardRoutes.Get("/trainer", middleware.RoleMiddleware("TRAINER"), dashboardHandler.TrainerDashboard)
	dashboardRoutes.Get("/member", middleware.MemberOnly(), dashboardHandler.MemberDashboard)
}
