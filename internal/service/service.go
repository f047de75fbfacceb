package service

import (
	"fmt"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"citizen-portal/internal/config"
	"citizen-portal/internal/queue"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/app"
	"citizen-portal/internal/service/audit"
	"citizen-portal/internal/service/auth"
	"citizen-portal/internal/service/dispatch"
	"citizen-portal/internal/service/email"
	"citizen-portal/internal/service/form"
	"citizen-portal/internal/service/notification"
	"citizen-portal/internal/service/settings"
	"citizen-portal/internal/service/signup"
	"citizen-portal/internal/service/sms"
	"citizen-portal/internal/service/task"
	"citizen-portal/internal/service/user"
)

type Services struct {
	Auth         auth.Service
	User         user.Service
	Signup       signup.Service
	App          app.Service
	Settings     settings.Service
	Notification notification.Service
	Dispatch     dispatch.Service
	Task         task.Service
	Form         form.Service
	Email        email.Service
	SMS          sms.Service
	Audit        audit.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.Default()
	}

	emailService := email.NewService(cfg)
	smsService := sms.NewService(cfg)

	storage := queue.NewRedisStorage(redisClient, cfg.QueueName)
	enqueuer, err := queue.NewEnqueuer(storage)
	if err != nil {
		return nil, fmt.Errorf("failed to build enqueuer: %w", err)
	}

	dispatchService := dispatch.NewService(repos.NotificationSetting, repos.User, repos.App, enqueuer, emailService, logger)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.App, repos.AuditLog, dispatchService, logger)

	authService := auth.NewService(repos.User, repos.BetaSignup, repos.Session, emailService, cfg, logger)
	userService := user.NewService(repos.User, repos.BetaSignup, repos.AuditLog, logger)
	signupService := signup.NewService(repos.BetaSignup)
	appService := app.NewService(repos.App, repos.AuditLog, logger)
	settingsService := settings.NewService(repos.NotificationSetting)
	taskService := task.NewService(repos.Task, repos.App, repos.AuditLog, logger)
	formService := form.NewService(repos.Task, minioClient, cfg)
	auditService := audit.NewService(repos.AuditLog)

	return &Services{
		Auth:         authService,
		User:         userService,
		Signup:       signupService,
		App:          appService,
		Settings:     settingsService,
		Notification: notificationService,
		Dispatch:     dispatchService,
		Task:         taskService,
		Form:         formService,
		Email:        emailService,
		SMS:          smsService,
		Audit:        auditService,
	}, nil
}
