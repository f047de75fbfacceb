package delivery

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/email"
)

// EmailHandler renders and sends the notification email. Transport
// failures are returned to the queue, whose retry policy governs any
// repeat attempt.
type EmailHandler struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	appRepo   repository.AppRepository
	emailSvc  email.Service
}

func NewEmailHandler(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	appRepo repository.AppRepository,
	emailSvc email.Service,
) *EmailHandler {
	return &EmailHandler{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		appRepo:   appRepo,
		emailSvc:  emailSvc,
	}
}

func (h *EmailHandler) Name() string {
	return HandlerEmail
}

func (h *EmailHandler) Deliver(ctx context.Context, notificationID uuid.UUID) error {
	notif, err := h.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("load notification %s: %w", notificationID, err)
	}
	if notif == nil {
		return notFound(notificationID)
	}

	user, err := h.userRepo.GetByID(ctx, notif.UserID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", notif.UserID, err)
	}
	if user == nil {
		return fmt.Errorf("user %s not found for notification %s", notif.UserID, notificationID)
	}

	var appName *string
	if notif.AppID != nil {
		app, err := h.appRepo.GetByID(ctx, *notif.AppID)
		if err != nil {
			return fmt.Errorf("load app %s: %w", *notif.AppID, err)
		}
		if app != nil {
			appName = &app.Name
		}
	}

	return h.emailSvc.SendNotificationEmail(ctx, user.Email, user.FirstName, appName, notif.Subject, notif.Body)
}
