package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
	"github.com/rihla-travel/portal/internal/model"
)

type EmailService struct {
	client    *resend.Client
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailService(apiKey, fromEmail, appURL, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (s *EmailService) send(ctx context.Context, kind, to, subject, body string, attrs ...any) error {
	if s.isDev {
		slog.Info("email sent (dev mode)", append([]any{"type", kind, "to", to, "subject", subject}, attrs...)...)
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}

func (s *EmailService) SendVerificationEmail(ctx context.Context, email, token, name string) error {
	verifyURL := model.TokenLink(s.appURL, model.TokenTypeEmailVerify, token)
	subject, body := verifyEmailTemplate(name, verifyURL, s.appName)
	return s.send(ctx, "email_verify", email, subject, body, "url", verifyURL)
}

func (s *EmailService) SendPasswordResetEmail(ctx context.Context, email, token, name string) error {
	resetURL := model.TokenLink(s.appURL, model.TokenTypePasswordReset, token)
	subject, body := passwordResetEmailTemplate(name, resetURL, s.appName)
	return s.send(ctx, "password_reset", email, subject, body, "url", resetURL)
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, email, name string) error {
	servicesURL := fmt.Sprintf("%s/services", s.appURL)
	subject, body := welcomeEmailTemplate(name, servicesURL, s.appName)
	return s.send(ctx, "welcome", email, subject, body)
}

// SendSubmissionReceipt confirms a stored application to the applicant.
func (s *EmailService) SendSubmissionReceipt(ctx context.Context, email, name, service, reference string) error {
	profileURL := fmt.Sprintf("%s/profile", s.appURL)
	subject, body := submissionReceiptTemplate(name, service, reference, profileURL, s.appName)
	return s.send(ctx, "submission_receipt", email, subject, body, "reference", reference)
}

// SendOperatorAlert tells the agency inbox that a new application arrived.
func (s *EmailService) SendOperatorAlert(ctx context.Context, inbox, applicant, service, serviceKey, reference string) error {
	dashURL := fmt.Sprintf("%s/dash?tab=%s", s.appURL, serviceKey)
	subject, body := operatorAlertTemplate(applicant, service, reference, dashURL, s.appName)
	return s.send(ctx, "operator_alert", inbox, subject, body, "reference", reference)
}
