package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

const AuthCookieName = "auth_token"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidToken       = errors.New("invalid or expired link")
	ErrPasswordlessLogin  = errors.New("account has no password, sign in with Google")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService struct {
	userRepository           repository.UserRepository
	profileRepository        repository.ProfileRepository
	tokenRepository          repository.TokenRepository
	emailService             *EmailService
	jwtSecret                string
	isProduction             bool
	jwtExpiry                time.Duration
	tokenEmailVerifyExpiry   time.Duration
	tokenPasswordResetExpiry time.Duration
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	tokenRepository repository.TokenRepository,
	emailService *EmailService,
	jwtSecret string,
	isProduction bool,
	jwtExpiry time.Duration,
	tokenEmailVerifyExpiry time.Duration,
	tokenPasswordResetExpiry time.Duration,
) *AuthService {
	return &AuthService{
		userRepository:           userRepository,
		profileRepository:        profileRepository,
		tokenRepository:          tokenRepository,
		emailService:             emailService,
		isProduction:             isProduction,
		jwtSecret:                jwtSecret,
		jwtExpiry:                jwtExpiry,
		tokenEmailVerifyExpiry:   tokenEmailVerifyExpiry,
		tokenPasswordResetExpiry: tokenPasswordResetExpiry,
	}
}

// Registration is the sign-up form after trimming.
type Registration struct {
	Name        string
	Email       string
	Password    string
	CountryCode string
	Phone       string
}

// Register creates an unverified customer with a profile and mails a
// verification link. The account cannot sign in until the link is opened.
func (s *AuthService) Register(ctx context.Context, reg Registration) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(reg.Email))
	name := strings.TrimSpace(reg.Name)

	if err := validation.ValidateName(name); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}
	phone, err := validation.NormalizePhone(reg.CountryCode, reg.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(reg.Password); err != nil {
		return nil, err
	}

	hash, err := s.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		PasswordHash: &hash,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
	}
	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &model.Profile{
		UserID:    user.ID,
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
	}
	err = s.profileRepository.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	verifyToken, err := s.issueToken(user.ID, model.TokenTypeEmailVerify, s.tokenEmailVerifyExpiry)
	if err != nil {
		return nil, err
	}

	err = s.emailService.SendVerificationEmail(ctx, user.Email, verifyToken, name)
	if err != nil {
		// The account exists; the user can request a new link by resetting the password.
		slog.Error("failed to send verification email", "error", err, "user_id", user.ID)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return nil, ErrPasswordlessLogin
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", ErrInvalidCredentials)
	}

	if !user.IsVerified() {
		return nil, fmt.Errorf("email not verified: %w", ErrEmailNotVerified)
	}

	return user, nil
}

// VerifyEmail consumes a verification token and marks the address verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token, model.TokenTypeEmailVerify)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.IsVerified() {
		return user, nil
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to verify email: %w", err)
	}

	err = s.emailService.SendWelcomeEmail(ctx, user.Email, s.displayName(user.ID))
	if err != nil {
		slog.Warn("failed to send welcome email", "error", err, "user_id", user.ID)
	}

	slog.Info("email verified", "user_id", user.ID)
	return user, nil
}

// RequestPasswordReset mails a reset link. Unknown addresses succeed silently
// so the form cannot be used to probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.ValidateEmail(email); err != nil {
		return ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		slog.Info("password reset requested for unknown email", "email", email)
		return nil
	}

	err = s.tokenRepository.DeleteByUserAndType(user.ID, model.TokenTypePasswordReset)
	if err != nil {
		slog.Warn("failed to delete old reset tokens", "error", err, "user_id", user.ID)
	}

	resetToken, err := s.issueToken(user.ID, model.TokenTypePasswordReset, s.tokenPasswordResetExpiry)
	if err != nil {
		return err
	}

	err = s.emailService.SendPasswordResetEmail(ctx, user.Email, resetToken, s.displayName(user.ID))
	if err != nil {
		slog.Error("failed to send password reset email", "error", err, "email", user.Email)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("password reset link sent", "email", user.Email)
	return nil
}

// CheckResetToken reports whether token can still reset a password.
func (s *AuthService) CheckResetToken(token string) error {
	if _, err := s.tokenRepository.Peek(token, model.TokenTypePasswordReset); err != nil {
		return ErrInvalidToken
	}
	return nil
}

// ResetPassword sets a new password from a reset link. Opening the link
// proves control of the inbox, so the address counts as verified.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	tokenModel, err := s.tokenRepository.ConsumeToken(token, model.TokenTypePasswordReset)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = &hash
	if !user.IsVerified() {
		now := time.Now()
		user.EmailVerifiedAt = &now
	}
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password reset", "user_id", user.ID)
	return nil
}

// ChangePassword updates the password of a signed-in user. Accounts created
// through Google have no current password and may set one directly.
func (s *AuthService) ChangePassword(userID, currentPassword, newPassword string) error {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.HasPassword() {
		if err := s.ComparePassword(currentPassword, *user.PasswordHash); err != nil {
			return ErrWrongPassword
		}
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = &hash
	err = s.userRepository.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userID)
	return nil
}

func (s *AuthService) ValidatePassword(password string) error {
	return validation.ValidatePassword(password)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) issueToken(userID, tokenType string, expiry time.Duration) (string, error) {
	value, err := s.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &model.Token{
		UserID:    userID,
		Type:      tokenType,
		Token:     value,
		ExpiresAt: time.Now().Add(expiry),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}
	return value, nil
}

func (s *AuthService) displayName(userID string) string {
	profile, err := s.profileRepository.ByUserID(userID)
	if err != nil || profile.Name == "" {
		return "there"
	}
	return profile.Name
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.jwtExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// JWTExpiry is how long a session cookie lives.
func (s *AuthService) JWTExpiry() time.Duration {
	return s.jwtExpiry
}

// StartSession signs a JWT for user and sets it as the session cookie.
func (s *AuthService) StartSession(w http.ResponseWriter, user *model.User) error {
	token, err := s.GenerateJWT(user)
	if err != nil {
		return err
	}
	s.SetJWTCookie(w, token, time.Now().Add(s.jwtExpiry))
	return nil
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// AuthenticateOAuth signs in a Google user, creating a verified account with
// a profile on first sight.
func (s *AuthService) AuthenticateOAuth(email, name, provider string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	err := validation.ValidateEmail(email)
	if err != nil {
		return nil, ErrInvalidEmail
	}

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to lookup user: %w", err)
		}

		now := time.Now()
		user = &model.User{
			ID:              uuid.Must(uuid.NewV7()).String(),
			Email:           email,
			Role:            model.RoleCustomer,
			EmailVerifiedAt: &now, // verified by the provider
			CreatedAt:       now,
		}

		err = s.userRepository.Create(user)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		profile := &model.Profile{
			UserID:    user.ID,
			Name:      strings.TrimSpace(name),
			CreatedAt: now,
		}
		err = s.profileRepository.Create(profile)
		if err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}

		slog.Info("new OAuth user created", "email", email, "user_id", user.ID, "provider", provider)
		return user, nil
	}

	if !user.IsVerified() {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			slog.Warn("failed to mark email as verified", "error", err, "user_id", user.ID)
		}
	}

	slog.Info("user authenticated via OAuth", "user_id", user.ID, "email", user.Email, "provider", provider)
	return user, nil
}
