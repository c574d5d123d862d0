package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/MilanBhattarai77/intern-management-api/internal/config"
	"github.com/MilanBhattarai77/intern-management-api/internal/constants"
	"github.com/MilanBhattarai77/intern-management-api/internal/database"
	"github.com/MilanBhattarai77/intern-management-api/internal/handlers"
	"github.com/MilanBhattarai77/intern-management-api/internal/jobs"
	"github.com/MilanBhattarai77/intern-management-api/internal/mailer"
	"github.com/MilanBhattarai77/intern-management-api/internal/middleware"
	"github.com/MilanBhattarai77/intern-management-api/internal/repository"
	"github.com/MilanBhattarai77/intern-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	tokenRepo := repository.NewTokenRepository(database.GetDB())
	authService := services.NewAuthService(userRepo, tokenRepo)

	// Mail-sending collaborator; console fallback without an API key
	var mailSender mailer.Mailer
	if cfg.SendgridAPIKey != "" {
		mailSender = mailer.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFromAddr)
	} else {
		log.Println("SENDGRID_API_KEY not set, emails go to the log")
		mailSender = mailer.NewConsoleMailer()
	}

	// Daily notification jobs
	notifier := jobs.NewNotifier(userRepo, mailSender)
	scheduler, err := jobs.StartScheduler(cfg, notifier)
	if err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler()
	taskHandler := handlers.NewTaskHandler()
	attendanceHandler := handlers.NewAttendanceHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Intern Management API is running",
		})
	})

	// Authentication (sign-in is public)
	r.POST("/sign-in", authHandler.SignIn)
	r.POST("/sign-out", middleware.RequireAuth(), authHandler.SignOut)

	// User profile routes (protected)
	users := r.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// Task routes (protected)
	tasks := r.Group("/tasks")
	tasks.Use(middleware.RequireAuth())
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", taskHandler.CreateTask)
		tasks.POST("/assign", taskHandler.AssignTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
		tasks.PATCH("/:id/complete", taskHandler.CompleteTask)
	}

	// Attendance routes (protected)
	attendances := r.Group("/attendances")
	attendances.Use(middleware.RequireAuth())
	{
		attendances.GET("", attendanceHandler.ListAttendances)
		attendances.POST("", attendanceHandler.CreateAttendance)
		attendances.POST("/mark", attendanceHandler.MarkAttendance)
		attendances.GET("/:id", attendanceHandler.GetAttendance)
		attendances.PUT("/:id", attendanceHandler.UpdateAttendance)
		attendances.DELETE("/:id", attendanceHandler.DeleteAttendance)
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
