package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Output: &buf})

	slog.Info("application submitted", "service", "europe-visa")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "application submitted", entry["msg"])
	assert.Equal(t, "europe-visa", entry["service"])
}

func TestInitDevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Development: true, Output: &buf})

	Log.Debug("locale resolved", "lang", "ar")

	assert.Contains(t, buf.String(), "locale resolved")
	assert.Contains(t, buf.String(), "lang=ar")
}
