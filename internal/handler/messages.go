package handler

import (
	"errors"

	"github.com/rihla-travel/portal/internal/service"
	"github.com/rihla-travel/portal/internal/validation"
)

// messageKey maps a service error to the catalog key shown to the user.
// Unknown errors get the generic message; details only go to the log.
func messageKey(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, service.ErrEmailNotVerified):
		return "Please verify your email before signing in."
	case errors.Is(err, service.ErrPasswordlessLogin):
		return "This account uses Google sign-in."
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return "An account with this email already exists."
	case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, validation.ErrInvalidEmail):
		return "Please provide a valid email address."
	case errors.Is(err, service.ErrInvalidToken):
		return "Invalid or expired link."
	case errors.Is(err, service.ErrWrongPassword):
		return "Current password is incorrect."
	case errors.Is(err, validation.ErrPasswordTooShort), errors.Is(err, validation.ErrPasswordTooLong):
		return "Password must be at least 8 characters."
	case errors.Is(err, validation.ErrPasswordCommon):
		return "Password is too common, please choose a stronger one."
	case errors.Is(err, validation.ErrNameRequired), errors.Is(err, validation.ErrNameTooLong):
		return "Please enter your name."
	case errors.Is(err, validation.ErrInvalidPhone):
		return "Please enter a valid phone number."
	case errors.Is(err, validation.ErrFileTooLarge), errors.Is(err, validation.ErrFileTypeInvalid):
		return "Please upload a JPG, PNG or WebP image up to 5 MB."
	}
	return "An error occurred. Please try again."
}
