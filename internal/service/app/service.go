package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
	"citizen-portal/internal/repository"
)

var (
	ErrAppNotFound  = errors.New("app not found")
	ErrNameRequired = errors.New("name is required")
)

// Service manages the registry of third-party apps that can originate
// notifications. Admin only.
type Service interface {
	Create(ctx context.Context, adminID uuid.UUID, input domain.CreateAppInput) (*domain.App, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.App, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.App], error)
	Update(ctx context.Context, adminID, id uuid.UUID, input domain.UpdateAppInput) (*domain.App, error)
	Delete(ctx context.Context, adminID, id uuid.UUID) error
}

type service struct {
	appRepo   repository.AppRepository
	auditRepo repository.AuditLogRepository
	logger    *slog.Logger
}

func NewService(appRepo repository.AppRepository, auditRepo repository.AuditLogRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		appRepo:   appRepo,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, adminID uuid.UUID, input domain.CreateAppInput) (*domain.App, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	app := &domain.App{
		ID:          uuid.New(),
		Name:        input.Name,
		RedirectURI: input.RedirectURI,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, "CREATE", app.ID)
	return app, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.App, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrAppNotFound
	}
	return app, nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.App], error) {
	apps, total, err := s.appRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.App]{}, err
	}
	return domain.NewPaginatedResponse(apps, params.Page, params.PageSize, total), nil
}

func (s *service) Update(ctx context.Context, adminID, id uuid.UUID, input domain.UpdateAppInput) (*domain.App, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrNameRequired
		}
		app.Name = *input.Name
	}
	if input.RedirectURI != nil {
		app.RedirectURI = *input.RedirectURI
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	s.audit(ctx, adminID, "UPDATE", app.ID)
	return app, nil
}

func (s *service) Delete(ctx context.Context, adminID, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, adminID, "DELETE", id)
	return nil
}

func (s *service) audit(ctx context.Context, adminID uuid.UUID, action string, appID uuid.UUID) {
	if err := repository.RecordAudit(ctx, s.auditRepo, domain.CreateAuditLogInput{
		UserID:     adminID,
		Action:     action,
		EntityType: "APP",
		EntityID:   appID,
	}); err != nil {
		s.logger.Warn("failed to record audit log", slog.Any("error", err))
	}
}
