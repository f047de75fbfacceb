package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DeliveryType is a channel a notification can be delivered through.
type DeliveryType string

const (
	DeliveryDashboard DeliveryType = "dashboard"
	DeliveryText      DeliveryType = "text"
	DeliveryEmail     DeliveryType = "email"
)

func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryDashboard, DeliveryText, DeliveryEmail:
		return true
	default:
		return false
	}
}

// Notification is immutable once created; it is only ever removed by
// cascading delete of its owning user.
type Notification struct {
	ID               uuid.UUID  `json:"id" db:"notification_id"`
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	AppID            *uuid.UUID `json:"app_id,omitempty" db:"app_id"`
	NotificationType string     `json:"notification_type" db:"notification_type"`
	Subject          string     `json:"subject" db:"subject"`
	Body             string     `json:"body" db:"body"`
	ReceivedAt       time.Time  `json:"received_at" db:"received_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

// DashboardEntry is the dashboard channel's record of a delivered
// notification. At most one entry exists per notification.
type DashboardEntry struct {
	ID             uuid.UUID  `json:"id" db:"entry_id"`
	NotificationID uuid.UUID  `json:"notification_id" db:"notification_id"`
	UserID         uuid.UUID  `json:"user_id" db:"user_id"`
	IsRead         bool       `json:"is_read" db:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// DashboardNotification joins a dashboard entry with its notification
// for the citizen-facing feed.
type DashboardNotification struct {
	EntryID          uuid.UUID  `json:"entry_id" db:"entry_id"`
	NotificationID   uuid.UUID  `json:"notification_id" db:"notification_id"`
	AppID            *uuid.UUID `json:"app_id,omitempty" db:"app_id"`
	AppName          *string    `json:"app_name,omitempty" db:"app_name"`
	NotificationType string     `json:"notification_type" db:"notification_type"`
	Subject          string     `json:"subject" db:"subject"`
	Body             string     `json:"body" db:"body"`
	ReceivedAt       time.Time  `json:"received_at" db:"received_at"`
	IsRead           bool       `json:"is_read" db:"is_read"`
	ReadAt           *time.Time `json:"read_at,omitempty" db:"read_at"`
}

// NotificationSetting activates one delivery channel for one
// notification type. No row means the channel is inactive.
type NotificationSetting struct {
	ID               uuid.UUID    `json:"id" db:"setting_id"`
	UserID           uuid.UUID    `json:"user_id" db:"user_id"`
	NotificationType string       `json:"notification_type" db:"notification_type"`
	DeliveryType     DeliveryType `json:"delivery_type" db:"delivery_type"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}

type NotificationSettingInput struct {
	NotificationType string       `json:"notification_type" validate:"required"`
	DeliveryType     DeliveryType `json:"delivery_type" validate:"required,oneof=dashboard text email"`
}

type CreateNotificationInput struct {
	UserID           uuid.UUID  `json:"user_id" validate:"required"`
	AppID            *uuid.UUID `json:"app_id,omitempty"`
	NotificationType string     `json:"notification_type"`
	Subject          string     `json:"subject" validate:"required"`
	Body             string     `json:"body" validate:"required"`
	ReceivedAt       time.Time  `json:"received_at" validate:"required"`
}

var (
	ErrSubjectRequired    = errors.New("subject can't be blank")
	ErrBodyRequired       = errors.New("body can't be blank")
	ErrReceivedAtRequired = errors.New("received_at can't be blank")
	ErrUserIDRequired     = errors.New("user_id can't be blank")
)

func (in CreateNotificationInput) Validate() error {
	if strings.TrimSpace(in.Subject) == "" {
		return ErrSubjectRequired
	}
	if strings.TrimSpace(in.Body) == "" {
		return ErrBodyRequired
	}
	if in.ReceivedAt.IsZero() {
		return ErrReceivedAtRequired
	}
	if in.UserID == uuid.Nil {
		return ErrUserIDRequired
	}
	return nil
}
