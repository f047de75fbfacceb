package domain

import (
	"time"

	"github.com/google/uuid"
)

// BetaSignup is the account allow-list. An email may only register,
// or be set on an existing account, while an approved row exists.
type BetaSignup struct {
	ID         uuid.UUID `json:"id" db:"signup_id"`
	Email      string    `json:"email" db:"email"`
	IsApproved bool      `json:"is_approved" db:"is_approved"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
