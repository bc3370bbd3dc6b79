package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName         string
	AppEnv          string
	AppURL          string
	Port            string
	AppTagline      string
	SupportEmail    string
	SupportPhone    string
	SupportWhatsApp string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret                string
	JWTExpiry                time.Duration
	TokenEmailVerifyExpiry   time.Duration
	TokenPasswordResetExpiry time.Duration

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Email
	EmailFrom    string
	ResendAPIKey string
	NotifyEmail  string // Operator inbox for new application alerts

	// Storage (S3-compatible via aws-sdk or a MinIO server via minio-go)
	StorageDriver    string // "s3" or "minio"
	StorageBucket    string
	StorageRegion    string
	StorageAccessKey string
	StorageSecretKey string
	StorageEndpoint  string // Optional for s3, required for minio
	StorageUseSSL    bool
	StoragePublicURL string // Optional: CDN or public bucket base URL
	UploadMaxBytes   int64

	// Orphaned upload reconciliation
	ReconcileInterval time.Duration // 0 disables the in-process loop
	ReconcileGrace    time.Duration

	// Redis (optional, used for the reconciliation lease)
	RedisAddr     string
	RedisPassword string

	// Outgoing webhooks (optional)
	SubmissionWebhookURL    string
	SubmissionWebhookSecret string

	// Observability (optional)
	SentryDSN      string
	OTLPEndpoint   string
	MetricsEnabled bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:         envString("APP_NAME", "Rihla"),
		AppEnv:          envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:          envRequired("APP_URL"), // Required: base URL for email links and OAuth redirects
		Port:            envString("PORT", "8090"),
		AppTagline:      envString("APP_TAGLINE", "Travel made easy"),
		SupportEmail:    envString("SUPPORT_EMAIL", "hello@example.com"),
		SupportPhone:    envString("SUPPORT_PHONE", ""),
		SupportWhatsApp: envString("SUPPORT_WHATSAPP", ""),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/rihla.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:                envRequired("JWT_SECRET"),
		JWTExpiry:                envDuration("JWT_EXPIRY", 168*time.Hour),                // 7 days
		TokenEmailVerifyExpiry:   envDuration("TOKEN_EMAIL_VERIFY_EXPIRY", 24*time.Hour),  // 24 hours
		TokenPasswordResetExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 1*time.Hour), // 1 hour

		// OAuth
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),
		NotifyEmail:  envString("NOTIFY_EMAIL", ""),

		// Storage
		StorageDriver:    envString("STORAGE_DRIVER", "s3"),
		StorageBucket:    envString("STORAGE_BUCKET", "uploads"),
		StorageRegion:    envString("STORAGE_REGION", "us-east-1"),
		StorageAccessKey: envRequired("STORAGE_ACCESS_KEY"),
		StorageSecretKey: envRequired("STORAGE_SECRET_KEY"),
		StorageEndpoint:  envString("STORAGE_ENDPOINT", ""),
		StorageUseSSL:    envBool("STORAGE_USE_SSL", true),
		StoragePublicURL: envString("STORAGE_PUBLIC_URL", ""),
		UploadMaxBytes:   int64(envInt("UPLOAD_MAX_BYTES", 32<<20)), // 32MB per submission

		// Reconciliation
		ReconcileInterval: envDuration("RECONCILE_INTERVAL", 6*time.Hour),
		ReconcileGrace:    envDuration("RECONCILE_GRACE", 24*time.Hour),

		// Redis
		RedisAddr:     envString("REDIS_ADDR", ""),
		RedisPassword: envString("REDIS_PASSWORD", ""),

		// Webhooks
		SubmissionWebhookURL:    envString("SUBMISSION_WEBHOOK_URL", ""),
		SubmissionWebhookSecret: envString("SUBMISSION_WEBHOOK_SECRET", ""),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		OTLPEndpoint:   envString("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows email to use log mode for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
	if cfg.SubmissionWebhookURL != "" && cfg.SubmissionWebhookSecret == "" {
		slog.Error("SUBMISSION_WEBHOOK_URL requires SUBMISSION_WEBHOOK_SECRET")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:         c.AppName,
		AppEnv:          c.AppEnv,
		AppURL:          c.AppURL,
		Port:            c.Port,
		AppTagline:      c.AppTagline,
		SupportEmail:    c.SupportEmail,
		SupportPhone:    c.SupportPhone,
		SupportWhatsApp: c.SupportWhatsApp,

		EmailFrom: c.EmailFrom,

		GoogleClientID: c.GoogleClientID,

		StorageEndpoint:  c.StorageEndpoint,  // Needed for CSP img-src
		StoragePublicURL: c.StoragePublicURL, // Needed for CSP img-src
		UploadMaxBytes:   c.UploadMaxBytes,
	}
}
