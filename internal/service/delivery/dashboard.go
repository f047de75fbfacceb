package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"citizen-portal/internal/repository"
)

// DashboardHandler creates the dashboard entry for a notification.
// The entry insert dedupes on notification id, so redelivery never
// produces a second dashboard row.
type DashboardHandler struct {
	notifRepo repository.NotificationRepository
	logger    *slog.Logger
}

func NewDashboardHandler(notifRepo repository.NotificationRepository, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{notifRepo: notifRepo, logger: logger}
}

func (h *DashboardHandler) Name() string {
	return HandlerDashboard
}

func (h *DashboardHandler) Deliver(ctx context.Context, notificationID uuid.UUID) error {
	notif, err := h.notifRepo.GetByID(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("load notification %s: %w", notificationID, err)
	}
	if notif == nil {
		return notFound(notificationID)
	}

	created, err := h.notifRepo.CreateDashboardEntry(ctx, notif)
	if err != nil {
		return fmt.Errorf("create dashboard entry for %s: %w", notificationID, err)
	}
	if !created {
		h.logger.Info("dashboard entry already exists, skipping",
			slog.String("notification_id", notificationID.String()),
		)
	}
	return nil
}
