package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"citizen-portal/internal/domain"
)

type BetaSignupRepository interface {
	// ExistsApproved reports whether the email is on the approved
	// allow-list. Registration and email changes both gate on it.
	ExistsApproved(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, signup *domain.BetaSignup) error
	Approve(ctx context.Context, email string) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.BetaSignup, int64, error)
}

type betaSignupRepository struct {
	db *sqlx.DB
}

func NewBetaSignupRepository(db *sqlx.DB) BetaSignupRepository {
	return &betaSignupRepository{db: db}
}

func (r *betaSignupRepository) ExistsApproved(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM beta_signups WHERE email = $1 AND is_approved = true)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *betaSignupRepository) Create(ctx context.Context, signup *domain.BetaSignup) error {
	query := `
		INSERT INTO beta_signups (signup_id, email, is_approved)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		signup.ID, signup.Email, signup.IsApproved,
	).Scan(&signup.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Already signed up; keep the call idempotent.
		return nil
	}
	return err
}

func (r *betaSignupRepository) Approve(ctx context.Context, email string) error {
	query := `UPDATE beta_signups SET is_approved = true WHERE email = $1`
	_, err := r.db.ExecContext(ctx, query, email)
	return err
}

func (r *betaSignupRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.BetaSignup, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM beta_signups`
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT * FROM beta_signups
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var signups []domain.BetaSignup
	err := r.db.SelectContext(ctx, &signups, query, params.PageSize, params.Offset())
	return signups, total, err
}
