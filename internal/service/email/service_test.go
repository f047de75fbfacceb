package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"citizen-portal/internal/service/email"
)

func TestNotificationSubject(t *testing.T) {
	appName := "Benefits Checker"

	t.Run("System Notification", func(t *testing.T) {
		subject := email.NotificationSubject("MyGov", nil, "Your claim was updated")
		assert.Equal(t, "[MYGOV] Your claim was updated", subject)
	})

	t.Run("App Notification", func(t *testing.T) {
		subject := email.NotificationSubject("MyGov", &appName, "Your claim was updated")
		assert.Equal(t, "[MYGOV] [Benefits Checker] Your claim was updated", subject)
	})

	t.Run("Empty App Name Treated As System", func(t *testing.T) {
		empty := ""
		subject := email.NotificationSubject("MyGov", &empty, "Hello")
		assert.Equal(t, "[MYGOV] Hello", subject)
	})
}
