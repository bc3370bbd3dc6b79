package routes

import (
	"io/fs"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	portal "github.com/rihla-travel/portal"
	"github.com/rihla-travel/portal/internal/app"
	"github.com/rihla-travel/portal/internal/handler"
	"github.com/rihla-travel/portal/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ContentService)
	seo := handler.NewSEOHandler(app.SitemapService, app.Cfg.AppURL)
	legal := handler.NewLegalHandler(app.ContentService)
	locale := handler.NewLocaleHandler(app.Cfg.IsProduction())
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	intake := handler.NewIntakeHandler(app.SubmissionService, app.Cfg.UploadMaxBytes)
	profile := handler.NewProfileHandler(app.ProfileService, app.UserService, app.AuthService, app.AvatarService)
	dashboard := handler.NewDashboardHandler(app.DashboardService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	static, _ := fs.Sub(portal.StaticFS, "static")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(static))))

	// Metrics
	if app.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{Registry: app.Registry}))
	}

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Pages
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /services", home.ServicesPage)
	mux.HandleFunc("GET /locations", home.LocationsPage)
	mux.HandleFunc("GET /locations/{slug}", home.LocationPage)
	mux.HandleFunc("GET /contact", home.ContactPage)
	mux.HandleFunc("GET /privacy", legal.ShowPage("privacy"))
	mux.HandleFunc("GET /terms", legal.ShowPage("terms"))

	// Language
	mux.HandleFunc("POST /lang/toggle", locale.Toggle)

	// Intake forms: anyone may look, only signed-in users may submit.
	mux.HandleFunc("GET /services/{slug}", intake.FormPage)
	mux.HandleFunc("POST /services/{slug}", middleware.RequireAuth(intake.Submit))

	// ============================================================================
	// AUTH
	// ============================================================================

	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", middleware.RequireGuest(auth.Login))
	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", middleware.RequireGuest(auth.Register))
	mux.HandleFunc("GET /forgot-password", middleware.RequireGuest(auth.ForgotPasswordPage))
	mux.HandleFunc("POST /forgot-password", middleware.RequireGuest(auth.ForgotPassword))
	mux.HandleFunc("GET /reset-password", auth.ResetPasswordPage)
	mux.HandleFunc("POST /reset-password", auth.ResetPassword)
	mux.HandleFunc("GET /verify-email/{token}", auth.VerifyEmail)
	mux.HandleFunc("POST /logout", auth.Logout)

	// OAuth
	mux.HandleFunc("GET /auth/google", middleware.RequireGuest(auth.GoogleAuth))
	mux.HandleFunc("GET /auth/google/callback", auth.GoogleCallback)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /profile", middleware.RequireAuth(profile.ProfilePage))
	mux.HandleFunc("POST /profile", middleware.RequireAuth(profile.Update))
	mux.HandleFunc("POST /profile/avatar", middleware.RequireAuth(profile.UploadAvatar))
	mux.HandleFunc("POST /profile/password", middleware.RequireAuth(profile.ChangePassword))

	// Owner dashboard
	mux.HandleFunc("GET /dash", middleware.RequireOperator(dashboard.DashboardPage))
	mux.HandleFunc("GET /dash/{tab}/{id}", middleware.RequireOperator(dashboard.Detail))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg),  // Config must be first (needed by SecurityHeaders for the storage origin)
		middleware.NonceMiddleware,  // Generate CSP nonce for each request (must be before SecurityHeaders)
		middleware.SecurityHeaders,  // Security headers for all responses (XSS, clickjacking, etc.)
		middleware.Tracing(mux),
		middleware.Metrics(app.Metrics, mux),
		middleware.RequestLogging,
		middleware.MaxBody(app.Cfg.UploadMaxBytes),
		middleware.CSRFProtection,   // CSRF protection for all state-changing requests
		middleware.Locale,
		middleware.AuthMiddleware(app.AuthService, app.UserService, app.ProfileService),
		middleware.WithURLPath,
	)

	return handler
}
