package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendNotificationEmail(ctx context.Context, toEmail, firstName string, appName *string, subject, htmlBody string) error {
	args := m.Called(ctx, toEmail, firstName, appName, subject, htmlBody)
	return args.Error(0)
}

func (m *EmailService) SendEmailVerification(ctx context.Context, toEmail, firstName, verificationToken string) error {
	args := m.Called(ctx, toEmail, firstName, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, firstName, resetToken string) error {
	args := m.Called(ctx, toEmail, firstName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	args := m.Called(ctx, toEmail, firstName)
	return args.Error(0)
}
