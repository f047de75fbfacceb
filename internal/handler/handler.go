package handler

import "citizen-portal/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Signup       *SignupHandler
	App          *AppHandler
	Setting      *SettingHandler
	Notification *NotificationHandler
	Task         *TaskHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Signup:       NewSignupHandler(services.Signup),
		App:          NewAppHandler(services.App),
		Setting:      NewSettingHandler(services.Settings),
		Notification: NewNotificationHandler(services.Notification),
		Task:         NewTaskHandler(services.Task, services.Form),
		Audit:        NewAuditHandler(services.Audit),
	}
}
