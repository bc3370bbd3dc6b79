package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// EmailNotifier mails the applicant a receipt and, when an inbox is
// configured, alerts the agency.
type EmailNotifier struct {
	email         *EmailService
	operatorInbox string
}

func NewEmailNotifier(email *EmailService, operatorInbox string) *EmailNotifier {
	return &EmailNotifier{email: email, operatorInbox: operatorInbox}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(ctx context.Context, e SubmissionEvent) error {
	service := e.Form.Title.En
	var errs []error

	err := n.email.SendSubmissionReceipt(ctx, e.ContactEmail(), e.Applicant(), service, e.Application.ID)
	if err != nil {
		errs = append(errs, fmt.Errorf("receipt: %w", err))
	}

	if n.operatorInbox != "" {
		err = n.email.SendOperatorAlert(ctx, n.operatorInbox, e.Applicant(), service, e.Form.Slug, e.Application.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("operator alert: %w", err))
		}
	}

	return errors.Join(errs...)
}

// SubmittedEventType is the webhook event sent for every stored application.
const SubmittedEventType = "application.submitted"

type webhookPayload struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      webhookData `json:"data"`
}

type webhookData struct {
	ID        string         `json:"id"`
	Service   string         `json:"service"`
	UserID    string         `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	Fields    map[string]any `json:"fields"`
}

// WebhookNotifier POSTs a signed Standard Webhooks event to an endpoint,
// e.g. a CRM intake.
type WebhookNotifier struct {
	url    string
	signer *standardwebhooks.Webhook
	client *http.Client
	now    func() time.Time
}

// NewWebhookNotifier accepts the secret in the "whsec_<base64>" form.
func NewWebhookNotifier(url, secret string) (*WebhookNotifier, error) {
	signer, err := standardwebhooks.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}

	return &WebhookNotifier{
		url:    url,
		signer: signer,
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		now: time.Now,
	}, nil
}

func (n *WebhookNotifier) Name() string { return "webhook" }

func (n *WebhookNotifier) Notify(ctx context.Context, e SubmissionEvent) error {
	now := n.now()
	payload, err := json.Marshal(webhookPayload{
		Type:      SubmittedEventType,
		Timestamp: now.UTC(),
		Data: webhookData{
			ID:        e.Application.ID,
			Service:   e.Form.Slug,
			UserID:    e.Application.UserID,
			CreatedAt: e.Application.CreatedAt,
			Fields:    e.Application.Values,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook: %w", err)
	}

	msgID := "msg_" + e.Application.ID
	signature, err := n.signer.Sign(msgID, now, payload)
	if err != nil {
		return fmt.Errorf("failed to sign webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("webhook-id", msgID)
	req.Header.Set("webhook-timestamp", fmt.Sprintf("%d", now.Unix()))
	req.Header.Set("webhook-signature", signature)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}
	return nil
}
