package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rihla-travel/portal/internal/model"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func submittedEvent(t *testing.T) SubmissionEvent {
	t.Helper()
	return SubmissionEvent{
		Application: &model.Application{
			ID:        "0190c1a2-app",
			UserID:    "user-1",
			Service:   "europe-visa",
			Table:     "europe_visa_applications",
			Values:    map[string]any{"full_name": "Sara", "email": "sara@example.com", "passport_url": "https://cdn.example.com/uploads/europe-visa/1_p.pdf"},
			CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		Form: form(t, "europe-visa"),
		User: &model.User{ID: "user-1", Email: "account@example.com"},
	}
}

func TestWebhookNotifierSignsPayload(t *testing.T) {
	verifier, err := standardwebhooks.NewWebhook(testWebhookSecret)
	require.NoError(t, err)

	var (
		verifyErr error
		got       webhookPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		verifyErr = verifier.Verify(body, r.Header)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n, err := NewWebhookNotifier(srv.URL, testWebhookSecret)
	require.NoError(t, err)

	require.NoError(t, n.Notify(context.Background(), submittedEvent(t)))
	assert.NoError(t, verifyErr)
	assert.Equal(t, SubmittedEventType, got.Type)
	assert.Equal(t, "europe-visa", got.Data.Service)
	assert.Equal(t, "0190c1a2-app", got.Data.ID)
	assert.Equal(t, "Sara", got.Data.Fields["full_name"])
}

func TestWebhookNotifierRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n, err := NewWebhookNotifier(srv.URL, testWebhookSecret)
	require.NoError(t, err)
	assert.ErrorContains(t, n.Notify(context.Background(), submittedEvent(t)), "502")
}

func TestNewWebhookNotifierBadSecret(t *testing.T) {
	_, err := NewWebhookNotifier("http://localhost", "whsec_!!!")
	assert.Error(t, err)
}

func TestEmailNotifierDevMode(t *testing.T) {
	email := NewEmailService("", "noreply@rihla.test", "http://localhost:8080", "Rihla", true)
	n := NewEmailNotifier(email, "owner@rihla.test")
	assert.Equal(t, "email", n.Name())
	assert.NoError(t, n.Notify(context.Background(), submittedEvent(t)))
}

func TestEmailNotifierUnconfigured(t *testing.T) {
	email := NewEmailService("", "noreply@rihla.test", "http://localhost:8080", "Rihla", false)
	err := NewEmailNotifier(email, "owner@rihla.test").Notify(context.Background(), submittedEvent(t))
	assert.ErrorContains(t, err, "receipt")
	assert.ErrorContains(t, err, "operator alert")
}

func TestContactEmailFallsBackToAccount(t *testing.T) {
	e := submittedEvent(t)
	assert.Equal(t, "sara@example.com", e.ContactEmail())

	delete(e.Application.Values, "email")
	assert.Equal(t, "account@example.com", e.ContactEmail())
	assert.Equal(t, "Sara", e.Applicant())
}
