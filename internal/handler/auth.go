package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rihla-travel/portal/internal/config"
	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/ui"
	"github.com/rihla-travel/portal/internal/ui/pages"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauth_state"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type authHandler struct {
	authService       *service.AuthService
	googleOAuthConfig *oauth2.Config
	secure            bool
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/auth/google/callback",
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
		secure: cfg.IsProduction(),
	}
}

func (h *authHandler) googleEnabled() bool {
	return h.googleOAuthConfig.ClientID != ""
}

func (h *authHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	data := pages.LoginData{GoogleEnabled: h.googleEnabled()}

	switch r.URL.Query().Get("notice") {
	case "verify":
		data.Notice = pages.InfoNotice(lang, "Account created. Please check your email to verify your account.")
	case "verified":
		data.Notice = pages.InfoNotice(lang, "Email verified. You can sign in now.")
	case "reset":
		data.Notice = pages.InfoNotice(lang, "Password updated. Please sign in.")
	case "oauth":
		data.Notice = pages.ErrorNotice(lang, "Google sign-in failed. Please try again.")
	}

	ui.Render(w, r, pages.Login(lang, data))
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	data := pages.LoginData{Email: email, GoogleEnabled: h.googleEnabled()}

	if email == "" || password == "" {
		data.Notice = pages.ErrorNotice(lang, "Email and password are required.")
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Login(lang, data))
		return
	}

	user, err := h.authService.Login(email, password)
	if err != nil {
		slog.Warn("password login failed", "error", err, "email", email)
		data.Notice = pages.ErrorNotice(lang, messageKey(err))
		ui.RenderStatus(w, r, http.StatusUnauthorized, pages.Login(lang, data))
		return
	}

	err = h.authService.StartSession(w, user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		data.Notice = pages.ErrorNotice(lang, "An error occurred. Please try again.")
		ui.RenderStatus(w, r, http.StatusInternalServerError, pages.Login(lang, data))
		return
	}

	slog.Info("user logged in with password", "user_id", user.ID)
	if user.IsOperator() {
		http.Redirect(w, r, "/dash", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *authHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register(ctxkeys.Lang(r.Context()), pages.RegisterData{GoogleEnabled: h.googleEnabled()}))
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)
	reg := service.Registration{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Password:    r.FormValue("password"),
		CountryCode: r.FormValue("country_code"),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
	}

	_, err := h.authService.Register(ctx, reg)
	if err != nil {
		if !errors.Is(err, service.ErrEmailAlreadyExists) {
			slog.Warn("registration failed", "error", err, "email", reg.Email)
		}
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Register(lang, pages.RegisterData{
			Name:          reg.Name,
			Email:         reg.Email,
			CountryCode:   reg.CountryCode,
			Phone:         reg.Phone,
			Notice:        pages.ErrorNotice(lang, messageKey(err)),
			GoogleEnabled: h.googleEnabled(),
		}))
		return
	}

	http.Redirect(w, r, "/login?notice=verify", http.StatusSeeOther)
}

func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.VerifyEmail(r.Context(), r.PathValue("token"))
	if err != nil {
		slog.Warn("email verification failed", "error", err)
		lang := ctxkeys.Lang(r.Context())
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.Login(lang, pages.LoginData{
			Notice:        pages.ErrorNotice(lang, "Invalid or expired link."),
			GoogleEnabled: h.googleEnabled(),
		}))
		return
	}

	slog.Info("email verified via link", "user_id", user.ID)
	http.Redirect(w, r, "/login?notice=verified", http.StatusSeeOther)
}

func (h *authHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.ForgotPassword(ctxkeys.Lang(r.Context()), pages.ForgotPasswordData{}))
}

func (h *authHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := ctxkeys.Lang(ctx)
	email := strings.TrimSpace(r.FormValue("email"))

	err := h.authService.RequestPasswordReset(ctx, email)
	if errors.Is(err, service.ErrInvalidEmail) {
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.ForgotPassword(lang, pages.ForgotPasswordData{
			Email:  email,
			Notice: pages.ErrorNotice(lang, messageKey(err)),
		}))
		return
	}
	if err != nil {
		// Don't reveal specific errors to prevent email enumeration
		slog.Warn("password reset request failed", "error", err, "email", email)
	}

	ui.Render(w, r, pages.ForgotPassword(lang, pages.ForgotPasswordData{
		Email:  email,
		Sent:   true,
		Notice: pages.InfoNotice(lang, "If an account exists for that email, we sent a reset link."),
	}))
}

func (h *authHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	token := r.URL.Query().Get("token")

	if err := h.authService.CheckResetToken(token); err != nil {
		ui.Render(w, r, pages.ResetPassword(lang, pages.ResetPasswordData{
			Invalid: true,
			Notice:  pages.ErrorNotice(lang, "Invalid or expired link."),
		}))
		return
	}

	ui.Render(w, r, pages.ResetPassword(lang, pages.ResetPasswordData{Token: token}))
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	lang := ctxkeys.Lang(r.Context())
	token := r.FormValue("token")

	err := h.authService.ResetPassword(token, r.FormValue("password"))
	if err != nil {
		slog.Warn("password reset failed", "error", err)
		data := pages.ResetPasswordData{Token: token, Notice: pages.ErrorNotice(lang, messageKey(err))}
		if errors.Is(err, service.ErrInvalidToken) {
			data.Invalid = true
		}
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.ResetPassword(lang, data))
		return
	}

	http.Redirect(w, r, "/login?notice=reset", http.StatusSeeOther)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GoogleAuth redirects user to Google OAuth consent screen
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	if !h.googleEnabled() {
		http.NotFound(w, r)
		return
	}

	state := generateOAuthState()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600, // 10 minutes
	})

	http.Redirect(w, r, h.googleOAuthConfig.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || cookie.Value != state {
		slog.Warn("google oauth state validation failed", "error", err)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   oauthStateCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.Warn("google oauth callback missing code")
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	token, err := h.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		slog.Error("google oauth token exchange failed", "error", err)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	resp, err := h.googleOAuthConfig.Client(ctx, token).Get(googleUserInfo)
	if err != nil {
		slog.Error("failed to get google user info", "error", err)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			slog.Error("failed to close response body", "error", closeErr)
		}
	}()

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	err = json.NewDecoder(resp.Body).Decode(&info)
	if err != nil {
		slog.Error("failed to decode google user info", "error", err)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	user, err := h.authService.AuthenticateOAuth(info.Email, info.Name, "google")
	if err != nil {
		slog.Error("oauth authentication failed", "error", err, "email", info.Email)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	err = h.authService.StartSession(w, user)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", user.ID)
		http.Redirect(w, r, "/login?notice=oauth", http.StatusSeeOther)
		return
	}

	slog.Info("user logged in with google oauth", "user_id", user.ID)
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// generateOAuthState creates cryptographically secure random state token for OAuth CSRF protection
func generateOAuthState() string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
