package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenUsable(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	used := now.Add(-time.Minute)

	assert.True(t, (&Token{ExpiresAt: now.Add(time.Hour)}).Usable(now))
	assert.False(t, (&Token{ExpiresAt: now}).Usable(now))
	assert.False(t, (&Token{ExpiresAt: now.Add(time.Hour), UsedAt: &used}).Usable(now))
}

func TestTokenLink(t *testing.T) {
	base := "https://rihla.example"
	assert.Equal(t, "https://rihla.example/verify-email/abc", TokenLink(base, TokenTypeEmailVerify, "abc"))
	assert.Equal(t, "https://rihla.example/reset-password?token=a%2Bb", TokenLink(base, TokenTypePasswordReset, "a+b"))
	assert.Equal(t, base, TokenLink(base, "other", "abc"))
}

func TestUserRoles(t *testing.T) {
	hash := "x"
	u := &User{Role: RoleOperator, PasswordHash: &hash}
	assert.True(t, u.IsOperator())
	assert.True(t, u.HasPassword())
	assert.False(t, u.IsVerified())
	assert.False(t, (&User{Role: RoleCustomer}).IsOperator())
}
