package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"citizen-portal/internal/config"
	"citizen-portal/internal/handler"
	"citizen-portal/internal/middleware"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service"
	"citizen-portal/internal/service/auth"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (form upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redisClient, minioClient, cfg, slogger)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	signups := v1.Group("/signups")
	signups.Post("/", h.Signup.Request)

	authGroup := v1.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.RefreshToken)
	authGroup.Post("/forgot-password", h.Auth.ForgotPassword)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Get("/verify-email", h.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", h.Auth.ResendVerification)

	protected := v1.Group("", middleware.AuthRequired(authService))

	users := protected.Group("/users")
	users.Get("/me", h.User.GetProfile)
	users.Put("/me", h.User.UpdateProfile)
	users.Get("/me/schema-org", h.User.GetSchemaOrgProfile)
	users.Delete("/me", h.User.DeleteAccount)

	settings := protected.Group("/settings/notifications")
	settings.Get("/", h.Setting.List)
	settings.Post("/", h.Setting.Add)
	settings.Put("/", h.Setting.Replace)
	settings.Delete("/:id", h.Setting.Remove)

	notifications := protected.Group("/notifications")
	notifications.Post("/", middleware.RequireRole("admin"), h.Notification.Create)
	notifications.Get("/", h.Notification.ListDashboard)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	tasks := protected.Group("/tasks")
	tasks.Post("/", h.Task.Create)
	tasks.Get("/", h.Task.List)
	tasks.Get("/:id", h.Task.Get)
	tasks.Post("/:id/complete", h.Task.CompleteAll)
	tasks.Post("/:id/items/:itemId/complete", h.Task.CompleteItem)
	tasks.Delete("/:id/items/:itemId", h.Task.RemoveItem)
	tasks.Post("/:id/items/:itemId/form", h.Task.UploadForm)
	tasks.Get("/:id/items/:itemId/form", h.Task.DownloadForm)

	apps := protected.Group("/apps", middleware.RequireRole("admin"))
	apps.Post("/", h.App.Create)
	apps.Get("/", h.App.List)
	apps.Get("/:id", h.App.Get)
	apps.Put("/:id", h.App.Update)
	apps.Delete("/:id", h.App.Delete)

	admin := protected.Group("/admin", middleware.RequireRole("admin"))
	admin.Get("/signups", h.Signup.List)
	admin.Post("/signups/approve", h.Signup.Approve)
	admin.Get("/audit", h.Audit.List)
	admin.Get("/audit/recent", h.Audit.GetRecentActivities)
	admin.Get("/audit/:entityType/:entityId", h.Audit.ListByEntity)
}
