// Package dispatch resolves a created notification against the
// owner's delivery preferences and fans it out as one queue job per
// active channel. Resolution happens exactly once, at creation time:
// preference changes made afterwards do not affect notifications that
// were already dispatched.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/queue"
	"citizen-portal/internal/repository"
	"citizen-portal/internal/service/delivery"
	"citizen-portal/internal/service/email"
)

type Service interface {
	// Dispatch enqueues one delivery job per active channel for the
	// notification. An empty channel set falls back to a direct email
	// so the user is always notified somehow. A preference lookup
	// failure is returned and must abort the creation that triggered
	// the dispatch; fallback send failures are only logged.
	Dispatch(ctx context.Context, notif *domain.Notification) error
}

type service struct {
	settingRepo repository.NotificationSettingRepository
	userRepo    repository.UserRepository
	appRepo     repository.AppRepository
	enqueuer    queue.Enqueuer
	emailSvc    email.Service
	logger      *slog.Logger
}

func NewService(
	settingRepo repository.NotificationSettingRepository,
	userRepo repository.UserRepository,
	appRepo repository.AppRepository,
	enqueuer queue.Enqueuer,
	emailSvc email.Service,
	logger *slog.Logger,
) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		settingRepo: settingRepo,
		userRepo:    userRepo,
		appRepo:     appRepo,
		enqueuer:    enqueuer,
		emailSvc:    emailSvc,
		logger:      logger,
	}
}

func (s *service) Dispatch(ctx context.Context, notif *domain.Notification) error {
	types, err := s.settingRepo.ActiveDeliveryTypes(ctx, notif.UserID, notif.NotificationType)
	if err != nil {
		// Fail closed: no fan-out on partial preference data.
		return fmt.Errorf("resolve delivery types for notification %s: %w", notif.ID, err)
	}

	if len(types) == 0 {
		s.sendFallback(ctx, notif)
		return nil
	}

	// The repository already collapses duplicate rows; the set here
	// guards against any storage that does not.
	seen := make(map[domain.DeliveryType]bool, len(types))
	var errs []error
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true

		handler, ok := delivery.HandlerName(t)
		if !ok {
			s.logger.Warn("skipping unknown delivery type",
				slog.String("delivery_type", string(t)),
				slog.String("notification_id", notif.ID.String()),
			)
			continue
		}

		if err := s.enqueuer.Enqueue(ctx, handler, notif.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		s.logger.Info("delivery job enqueued",
			slog.String("handler", handler),
			slog.String("notification_id", notif.ID.String()),
		)
	}

	return errors.Join(errs...)
}

// sendFallback emails the notification directly to the user. It is the
// guaranteed delivery path when no channel preference matches; send
// failures are delivery errors, logged and never surfaced to the
// creating caller.
func (s *service) sendFallback(ctx context.Context, notif *domain.Notification) {
	user, err := s.userRepo.GetByID(ctx, notif.UserID)
	if err != nil || user == nil {
		s.logger.Error("fallback delivery failed: user lookup",
			slog.String("notification_id", notif.ID.String()),
			slog.String("user_id", notif.UserID.String()),
			slog.Any("error", err),
		)
		return
	}

	var appName *string
	if notif.AppID != nil {
		app, err := s.appRepo.GetByID(ctx, *notif.AppID)
		if err != nil {
			s.logger.Error("fallback delivery failed: app lookup",
				slog.String("notification_id", notif.ID.String()),
				slog.Any("error", err),
			)
			return
		}
		if app != nil {
			appName = &app.Name
		}
	}

	if err := s.emailSvc.SendNotificationEmail(ctx, user.Email, user.FirstName, appName, notif.Subject, notif.Body); err != nil {
		s.logger.Error("fallback delivery failed: send",
			slog.String("notification_id", notif.ID.String()),
			slog.Any("error", err),
		)
		return
	}

	s.logger.Info("fallback email delivered",
		slog.String("notification_id", notif.ID.String()),
	)
}
