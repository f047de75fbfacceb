package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"citizen-portal/internal/config"
	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var ErrFormNotFound = errors.New("form not found")

// presignedTTL bounds how long a download link stays valid.
const presignedTTL = 15 * time.Minute

// Service stores pre-filled PDF forms attached to task items and hands
// out short-lived download links.
type Service interface {
	Upload(ctx context.Context, userID, taskID, itemID uuid.UUID, fileName string, fileSize int64, reader io.Reader) (string, error)
	DownloadURL(ctx context.Context, userID, taskID, itemID uuid.UUID) (string, error)
}

type service struct {
	taskRepo    repository.TaskRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(taskRepo repository.TaskRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		taskRepo:    taskRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID, taskID, itemID uuid.UUID, fileName string, fileSize int64, reader io.Reader) (string, error) {
	if _, err := s.ownedItem(ctx, userID, taskID, itemID); err != nil {
		return "", err
	}

	formKey := fmt.Sprintf("forms/%s/%s/%s", userID.String(), itemID.String(), url.PathEscape(fileName))
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, formKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: "application/pdf",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload form: %w", err)
	}

	if err := s.taskRepo.SetItemFormKey(ctx, taskID, itemID, formKey); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, formKey, minio.RemoveObjectOptions{})
		return "", err
	}

	return formKey, nil
}

func (s *service) DownloadURL(ctx context.Context, userID, taskID, itemID uuid.UUID) (string, error) {
	item, err := s.ownedItem(ctx, userID, taskID, itemID)
	if err != nil {
		return "", err
	}
	if item.FormKey == nil || *item.FormKey == "" {
		return "", ErrFormNotFound
	}

	signed, err := s.minioClient.PresignedGetObject(ctx, s.cfg.MinIOBucket, *item.FormKey, presignedTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign form download: %w", err)
	}
	return signed.String(), nil
}

func (s *service) ownedItem(ctx context.Context, userID, taskID, itemID uuid.UUID) (*domain.TaskItem, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil || task.UserID != userID {
		return nil, ErrFormNotFound
	}

	item, err := s.taskRepo.GetItem(ctx, taskID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrFormNotFound
	}
	return item, nil
}
