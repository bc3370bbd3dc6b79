package middleware

import (
	"net/http"

	"github.com/rihla-travel/portal/internal/ctxkeys"
	"github.com/rihla-travel/portal/internal/service"
)

// AuthMiddleware checks for the session cookie and adds the user and profile
// to the context when it is valid. The role comes from the stored user, never
// from the token, so a revoked operator loses access on the next request.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.AuthCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(userID)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)

			// Accounts created before profiles existed still get a session.
			profile, err := profileService.ByUserID(userID)
			if err == nil {
				ctx = ctxkeys.WithProfile(ctx, profile)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Redirect sends the browser to target; HTMX requests get HX-Redirect so the
// whole page navigates instead of swapping a fragment.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RequireAuth sends visitors without a session to /login.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest keeps signed-in users away from the sign-in and sign-up pages.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) != nil {
			Redirect(w, r, "/profile")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireOperator guards the owner dashboard. Visitors without a session go
// to /login and customers go home; next never runs for either.
func RequireOperator(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			Redirect(w, r, "/login")
			return
		}
		if !user.IsOperator() {
			Redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	}
}
