package domain

import (
	"time"

	"github.com/google/uuid"
)

// App is a third-party application registered with the portal. Its
// name brands notifications and emails it originates.
type App struct {
	ID          uuid.UUID `json:"id" db:"app_id"`
	Name        string    `json:"name" db:"name"`
	RedirectURI string    `json:"redirect_uri" db:"redirect_uri"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateAppInput struct {
	Name        string `json:"name" validate:"required"`
	RedirectURI string `json:"redirect_uri" validate:"required,url"`
}

type UpdateAppInput struct {
	Name        *string `json:"name,omitempty"`
	RedirectURI *string `json:"redirect_uri,omitempty" validate:"omitempty,url"`
}
