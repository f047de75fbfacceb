// Package delivery implements the per-channel notification delivery
// jobs. Each handler consumes a notification id from the queue and
// performs one channel-specific side effect. All handlers tolerate
// repeated execution for the same notification: the dashboard dedupes
// on write, while email and text redelivery can at worst produce a
// rare duplicate send, which the at-least-once queue contract accepts.
package delivery

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"citizen-portal/internal/domain"
)

const (
	HandlerDashboard = "notification:dashboard"
	HandlerEmail     = "notification:email"
	HandlerText      = "notification:text"
)

// HandlerName maps a delivery type to its queue handler identifier.
func HandlerName(t domain.DeliveryType) (string, bool) {
	switch t {
	case domain.DeliveryDashboard:
		return HandlerDashboard, true
	case domain.DeliveryEmail:
		return HandlerEmail, true
	case domain.DeliveryText:
		return HandlerText, true
	default:
		return "", false
	}
}

var ErrNotificationNotFound = errors.New("notification not found")

func notFound(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrNotificationNotFound, id)
}
