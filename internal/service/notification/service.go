package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/dispatch"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrAppNotFound  = errors.New("app not found")
)

type Service interface {
	// Create validates and persists a notification, then runs exactly
	// one dispatch pass for it. A validation or dispatch-resolution
	// failure means no notification exists afterwards.
	Create(ctx context.Context, creatorID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListDashboard(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.DashboardNotification], error)
	MarkAsRead(ctx context.Context, userID, entryID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	appRepo     repository.AppRepository
	auditRepo   repository.AuditLogRepository
	dispatchSvc dispatch.Service
	logger      *slog.Logger
}

func NewService(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	appRepo repository.AppRepository,
	auditRepo repository.AuditLogRepository,
	dispatchSvc dispatch.Service,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		appRepo:     appRepo,
		auditRepo:   auditRepo,
		dispatchSvc: dispatchSvc,
		logger:      logger,
	}
}

func (s *service) Create(ctx context.Context, creatorID uuid.UUID, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.AppID != nil {
		app, err := s.appRepo.GetByID(ctx, *input.AppID)
		if err != nil {
			return nil, err
		}
		if app == nil {
			return nil, ErrAppNotFound
		}
	}

	notif := &domain.Notification{
		ID:               uuid.New(),
		UserID:           input.UserID,
		AppID:            input.AppID,
		NotificationType: input.NotificationType,
		Subject:          input.Subject,
		Body:             input.Body,
		ReceivedAt:       input.ReceivedAt,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	// Explicit post-creation hook: the storage layer never triggers
	// dispatch on its own. A dispatch failure here unwinds the insert
	// so creation and dispatch abort together.
	if err := s.dispatchSvc.Dispatch(ctx, notif); err != nil {
		if delErr := s.notifRepo.Delete(ctx, notif.ID); delErr != nil {
			s.logger.Error("failed to unwind notification after dispatch failure",
				slog.String("notification_id", notif.ID.String()),
				slog.Any("error", delErr),
			)
		}
		return nil, fmt.Errorf("dispatch notification: %w", err)
	}

	if err := repository.RecordAudit(ctx, s.auditRepo, domain.CreateAuditLogInput{
		UserID:     creatorID,
		Action:     "CREATE",
		EntityType: "NOTIFICATION",
		EntityID:   notif.ID,
		Detail: map[string]string{
			"notification_type": notif.NotificationType,
			"subject":           notif.Subject,
		},
	}); err != nil {
		s.logger.Warn("failed to record audit log",
			slog.String("notification_id", notif.ID.String()),
			slog.Any("error", err),
		)
	}

	return notif, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return s.notifRepo.GetByID(ctx, id)
}

func (s *service) ListDashboard(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.DashboardNotification], error) {
	entries, total, err := s.notifRepo.ListDashboard(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.DashboardNotification]{}, err
	}

	return domain.NewPaginatedResponse(entries, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, userID, entryID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, userID, entryID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}
