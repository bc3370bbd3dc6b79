package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrNameRequired = errors.New("name is required")
	ErrNameTooLong  = errors.New("name is too long (max 100 characters)")
)

func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return ErrNameRequired
	}

	// Arabic names are multi-byte; count runes.
	if utf8.RuneCountInString(trimmed) > 100 {
		return ErrNameTooLong
	}

	return nil
}
