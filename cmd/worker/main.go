package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"citizen-portal/internal/config"
	"citizen-portal/internal/queue"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/delivery"
	"citizen-portal/internal/service/email"
	"citizen-portal/internal/service/sms"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

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

	repos := repository.NewRepositories(db)
	emailService := email.NewService(cfg)
	smsService := sms.NewService(cfg)

	storage := queue.NewRedisStorage(redisClient, cfg.QueueName)
	worker, err := queue.NewWorker(storage, cfg.WorkerConcurrency, cfg.JobMaxAttempts, logger)
	if err != nil {
		log.Fatalf("Failed to build worker: %v", err)
	}

	if err := worker.Register(
		delivery.NewDashboardHandler(repos.Notification, logger),
		delivery.NewEmailHandler(repos.Notification, repos.User, repos.App, emailService),
		delivery.NewTextHandler(repos.Notification, repos.User, smsService, cfg.ProductName, logger),
	); err != nil {
		log.Fatalf("Failed to register handlers: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("worker starting",
		slog.String("queue", cfg.QueueName),
		slog.Int("concurrency", cfg.WorkerConcurrency))

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("Worker stopped with error: %v", err)
	}
	logger.Info("worker stopped")
}
