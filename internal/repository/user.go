package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rihla-travel/portal/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrProfileNotFound = errors.New("profile not found")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	SetRole(email, role string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	if user.Role == "" {
		user.Role = model.RoleCustomer
	}
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, user.ID, user.Email, user.PasswordHash, user.Role, user.EmailVerifiedAt, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

const userColumns = `id, email, password_hash, role, email_verified_at, created_at`

func (r *userRepository) ByID(id string) (*model.User, error) {
	return r.one(`SELECT ` + userColumns + ` FROM users WHERE id = $1`, id)
}

// ByEmail matches the address exactly; callers normalize it first.
func (r *userRepository) ByEmail(email string) (*model.User, error) {
	return r.one(`SELECT ` + userColumns + ` FROM users WHERE email = $1`, email)
}

func (r *userRepository) one(query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.Get(user, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET email = $1, password_hash = $2, email_verified_at = $3 WHERE id = $4`

	_, err := r.db.Exec(query, user.Email, user.PasswordHash, user.EmailVerifiedAt, user.ID)
	return err
}

// SetRole changes the role of the user with email.
func (r *userRepository) SetRole(email, role string) error {
	result, err := r.db.Exec(`UPDATE users SET role = $1 WHERE email = $2`, role, email)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// isUniqueViolation works for both SQLite and PostgreSQL error text.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
