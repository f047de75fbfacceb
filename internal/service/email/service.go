package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/resend/resend-go/v3"

	"citizen-portal/internal/config"
)

type Service interface {
	// SendNotificationEmail delivers one notification to the user's
	// inbox. appName is nil for system-originated notifications; when
	// set, the subject and body identify the originating application.
	SendNotificationEmail(ctx context.Context, toEmail, firstName string, appName *string, subject, htmlBody string) error

	SendEmailVerification(ctx context.Context, toEmail, firstName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, firstName, resetToken string) error
	SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error
}

type service struct {
	client       *resend.Client
	config       *config.Config
	templatePath string
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	templatePath := "internal/service/templates/email"
	return &service{
		client:       client,
		config:       cfg,
		templatePath: templatePath,
	}
}

// NotificationSubject builds the inbox subject line:
// "[MYGOV] <subject>" for system notifications,
// "[MYGOV] [<app>] <subject>" for app-originated ones.
func NotificationSubject(productName string, appName *string, subject string) string {
	tag := "[" + strings.ToUpper(productName) + "]"
	if appName != nil && *appName != "" {
		return fmt.Sprintf("%s [%s] %s", tag, *appName, subject)
	}
	return fmt.Sprintf("%s %s", tag, subject)
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := template.ParseFiles(
		filepath.Join(s.templatePath, "layout.html"),
		filepath.Join(s.templatePath, templateName),
	)
	if err != nil {
		return fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.ProductName, s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, firstName string, appName *string, subject, htmlBody string) error {
	header := fmt.Sprintf("A notification for you from %s", s.config.ProductName)
	if appName != nil && *appName != "" {
		header = fmt.Sprintf("The %q %s application has sent you the following message", *appName, s.config.ProductName)
	}

	data := struct {
		Title  string
		Name   string
		Header string
		Body   template.HTML
	}{
		Title:  subject,
		Name:   firstName,
		Header: header,
		Body:   template.HTML(htmlBody),
	}
	return s.sendEmail(toEmail, NotificationSubject(s.config.ProductName, appName, subject), "notification.html", data)
}

func (s *service) SendEmailVerification(ctx context.Context, toEmail, firstName, verificationToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: fmt.Sprintf("Verify your email - %s", s.config.ProductName),
		Name:  firstName,
		Link:  fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Verify your email - %s", s.config.ProductName), "verification.html", data)
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, firstName, resetToken string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: fmt.Sprintf("Reset your password - %s", s.config.ProductName),
		Name:  firstName,
		Link:  fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Password reset request - %s", s.config.ProductName), "reset_password.html", data)
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, firstName string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: fmt.Sprintf("Welcome to %s", s.config.ProductName),
		Name:  firstName,
		Link:  fmt.Sprintf("https://%s/login", s.config.Domain),
	}
	return s.sendEmail(toEmail, fmt.Sprintf("Welcome to %s!", s.config.ProductName), "welcome.html", data)
}
