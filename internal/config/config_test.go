package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("RIHLA_TEST_BOOL", "false")
	t.Setenv("RIHLA_TEST_BAD_BOOL", "maybe")
	t.Setenv("RIHLA_TEST_INT", "42")
	t.Setenv("RIHLA_TEST_DURATION", "90m")

	assert.False(t, envBool("RIHLA_TEST_BOOL", true))
	assert.True(t, envBool("RIHLA_TEST_BAD_BOOL", true))
	assert.True(t, envBool("RIHLA_TEST_UNSET_BOOL", true))
	assert.Equal(t, 42, envInt("RIHLA_TEST_INT", 7))
	assert.Equal(t, 7, envInt("RIHLA_TEST_UNSET_INT", 7))
	assert.Equal(t, 90*time.Minute, envDuration("RIHLA_TEST_DURATION", time.Hour))
	assert.Equal(t, "fallback", envString("RIHLA_TEST_UNSET_STRING", "fallback"))
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:                 "Rihla",
		AppEnv:                  "production",
		JWTSecret:               "secret",
		ResendAPIKey:            "re_123",
		StorageAccessKey:        "ak",
		StorageSecretKey:        "sk",
		StorageEndpoint:         "https://minio.example.com",
		SubmissionWebhookSecret: "whsec_abc",
		GoogleClientSecret:      "gcs",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "Rihla", safe.AppName)
	assert.Equal(t, "https://minio.example.com", safe.StorageEndpoint)
	assert.Empty(t, safe.JWTSecret)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.StorageAccessKey)
	assert.Empty(t, safe.StorageSecretKey)
	assert.Empty(t, safe.SubmissionWebhookSecret)
	assert.Empty(t, safe.GoogleClientSecret)
	assert.True(t, safe.IsProduction())
}
