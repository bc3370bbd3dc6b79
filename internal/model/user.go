package model

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleOperator = "operator"
)

type User struct {
	ID              string     `db:"id"`
	Email           string     `db:"email"`
	PasswordHash    *string    `db:"password_hash"` // Nullable for Google-only users
	Role            string     `db:"role"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// IsOperator reports whether the user may open the owner dashboard.
func (u *User) IsOperator() bool {
	return u.Role == RoleOperator
}
