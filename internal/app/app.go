package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	portal "github.com/rihla-travel/portal"
	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/db"
	"github.com/rihla-travel/portal/internal/lease"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/storage"
	"github.com/rihla-travel/portal/internal/telemetry"
)

type App struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Storage  storage.Storage
	Registry *prometheus.Registry
	Metrics  *telemetry.Metrics
	// Locker is nil without Redis; the reconciler then runs unguarded.
	Locker *lease.Locker

	AuthService       *service.AuthService
	UserService       *service.UserService
	ProfileService    *service.ProfileService
	AvatarService     *service.AvatarService
	EmailService      *service.EmailService
	SubmissionService *service.SubmissionService
	DashboardService  *service.DashboardService
	ContentService    *service.ContentService
	SitemapService    *service.SitemapService
	Reconciler        *service.Reconciler
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.MigrateUp(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a, err := build(ctx, cfg, database)
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := telemetry.NewMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	if !cfg.MetricsEnabled {
		registry = nil
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	applicationRepository := repository.NewApplicationRepository(database)

	// Storage
	fileStorage, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Content
	content, err := fs.Sub(portal.ContentFS, "content")
	if err != nil {
		return nil, err
	}
	contentService, err := service.NewContentService(content)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)

	notifiers := []service.Notifier{service.NewEmailNotifier(emailService, cfg.NotifyEmail)}
	if cfg.SubmissionWebhookURL != "" {
		webhook, err := service.NewWebhookNotifier(cfg.SubmissionWebhookURL, cfg.SubmissionWebhookSecret)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, webhook)
	}

	authService := service.NewAuthService(
		userRepository,
		profileRepository,
		tokenRepository,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenEmailVerifyExpiry,
		cfg.TokenPasswordResetExpiry,
	)

	var locker *lease.Locker
	if cfg.RedisAddr != "" {
		locker, err = lease.New(cfg.RedisAddr, cfg.RedisPassword, "")
		if err != nil {
			return nil, fmt.Errorf("failed to initialize lease: %w", err)
		}
	}

	return &App{
		Cfg:      cfg,
		DB:       database,
		Storage:  fileStorage,
		Registry: registry,
		Metrics:  metrics,
		Locker:   locker,

		AuthService:       authService,
		UserService:       service.NewUserService(userRepository),
		ProfileService:    service.NewProfileService(profileRepository, applicationRepository),
		AvatarService:     service.NewAvatarService(profileRepository, fileStorage),
		EmailService:      emailService,
		SubmissionService: service.NewSubmissionService(fileStorage, applicationRepository, metrics, notifiers...),
		DashboardService:  service.NewDashboardService(applicationRepository),
		ContentService:    contentService,
		SitemapService:    service.NewSitemapService(contentService, cfg.AppURL),
		Reconciler:        service.NewReconciler(fileStorage, applicationRepository, metrics),
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Locker != nil {
		errs = append(errs, a.Locker.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	err := errors.Join(errs...)
	if err != nil {
		slog.Error("failed to close app", "error", err)
	}
	return err
}
