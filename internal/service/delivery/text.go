package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/sms"
)

const maxTextLength = 160

// TextHandler sends the notification subject as a short message to
// the user's mobile number. A user without a mobile number on file is
// a soft no-op, not a failure.
type TextHandler struct {
	notifRepo   repository.NotificationRepository
	userRepo    repository.UserRepository
	smsSvc      sms.Service
	productName string
	logger      *slog.Logger
}

func NewTextHandler(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	smsSvc sms.Service,
	productName string,
	logger *slog.Logger,
) *TextHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextHandler{
		notifRepo:   notifRepo,
		userRepo:    userRepo,
		smsSvc:      smsSvc,
		productName: productName,
		logger:      logger,
	}
}

func (h *TextHandler) Name() string {
	return HandlerText
}

func (h *TextHandler) Deliver(ctx context.Context, notificationID uuid.UUID) error {
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

	if user.Mobile == nil || *user.Mobile == "" {
		h.logger.Info("user has no mobile number, skipping text delivery",
			slog.String("notification_id", notificationID.String()),
			slog.String("user_id", user.ID.String()),
		)
		return nil
	}

	message := h.message(notif.Subject)
	return h.smsSvc.Send(ctx, *user.Mobile, message)
}

func (h *TextHandler) message(subject string) string {
	msg := fmt.Sprintf("[%s] %s", strings.ToUpper(h.productName), subject)
	if len(msg) > maxTextLength {
		msg = msg[:maxTextLength-3] + "..."
	}
	return msg
}
