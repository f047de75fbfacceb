package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User                UserRepository
	App                 AppRepository
	Notification        NotificationRepository
	NotificationSetting NotificationSettingRepository
	Task                TaskRepository
	BetaSignup          BetaSignupRepository
	Session             SessionRepository
	AuditLog            AuditLogRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:                NewUserRepository(db),
		App:                 NewAppRepository(db),
		Notification:        NewNotificationRepository(db),
		NotificationSetting: NewNotificationSettingRepository(db),
		Task:                NewTaskRepository(db),
		BetaSignup:          NewBetaSignupRepository(db),
		Session:             NewSessionRepository(db),
		AuditLog:            NewAuditLogRepository(db),
	}
}
