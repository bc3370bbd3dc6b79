package validation

import (
	"errors"
	"net/mail"
)

var ErrInvalidEmail = errors.New("invalid email address")

// ValidateEmail checks length (RFC 5321) and syntax (RFC 5322).
func ValidateEmail(email string) error {
	if email == "" || len(email) > 254 {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}

	return nil
}
