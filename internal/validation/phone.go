package validation

import (
	"errors"
	"slices"
	"strings"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// CountryCodes offered on the sign-up form, Egypt first.
var CountryCodes = []string{"+20", "+966", "+971", "+962", "+965", "+973", "+968", "+964", "+961"}

// NormalizePhone joins a country code and a local number into E.164 form.
// A leading zero on the local number is dropped.
func NormalizePhone(code, local string) (string, error) {
	if !slices.Contains(CountryCodes, code) {
		return "", ErrInvalidPhone
	}

	local = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(local))
	local = strings.TrimPrefix(local, "0")

	if len(local) < 6 || len(local) > 12 {
		return "", ErrInvalidPhone
	}
	for _, r := range local {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	return code + local, nil
}
