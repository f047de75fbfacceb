package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"citizen-portal/internal/domain"
)

type AppRepository interface {
	Create(ctx context.Context, app *domain.App) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.App, error)
	List(ctx context.Context, params domain.PaginationParams) ([]domain.App, int64, error)
	Update(ctx context.Context, app *domain.App) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type appRepository struct {
	db *sqlx.DB
}

func NewAppRepository(db *sqlx.DB) AppRepository {
	return &appRepository{db: db}
}

func (r *appRepository) Create(ctx context.Context, app *domain.App) error {
	query := `
		INSERT INTO apps (app_id, name, redirect_uri)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		app.ID, app.Name, app.RedirectURI,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
}

func (r *appRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.App, error) {
	var app domain.App
	query := `SELECT * FROM apps WHERE app_id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *appRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.App, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM apps`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM apps
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`

	var apps []domain.App
	err := r.db.SelectContext(ctx, &apps, query, params.PageSize, params.Offset())
	return apps, total, err
}

func (r *appRepository) Update(ctx context.Context, app *domain.App) error {
	query := `
		UPDATE apps SET name = $2, redirect_uri = $3, updated_at = NOW()
		WHERE app_id = $1`
	_, err := r.db.ExecContext(ctx, query, app.ID, app.Name, app.RedirectURI)
	return err
}

func (r *appRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM apps WHERE app_id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
