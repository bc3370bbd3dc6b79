package model

import (
	"net/url"
	"time"
)

// Token types. Each one is mailed as a link to its own page.
const (
	TokenTypeEmailVerify   = "email_verify"
	TokenTypePasswordReset = "password_reset"
)

// Token is a single-use secret behind an emailed link. A token is spent by
// setting UsedAt; rows are never reused.
type Token struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	Type      string     `db:"type"`
	Token     string     `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// Usable reports whether t can still be redeemed at now.
func (t *Token) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// TokenLink is the absolute link that redeems value. Verification links
// carry the token in the path; reset links in the query, where the form
// picks it up.
func TokenLink(appURL, tokenType, value string) string {
	switch tokenType {
	case TokenTypeEmailVerify:
		return appURL + "/verify-email/" + url.PathEscape(value)
	case TokenTypePasswordReset:
		return appURL + "/reset-password?token=" + url.QueryEscape(value)
	}
	return appURL
}
