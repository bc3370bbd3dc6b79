package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rihla-travel/portal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateDefaultsToCustomer(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO users (id, email, password_hash, role, email_verified_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`).
		WithArgs("u1", "a@example.com", nil, model.RoleCustomer, nil, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	u := &model.User{ID: "u1", Email: "a@example.com", CreatedAt: now}
	require.NoError(t, repo.Create(u))
	assert.Equal(t, model.RoleCustomer, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`INSERT INTO users (id, email, password_hash, role, email_verified_at, created_at) VALUES ($1, $2, $3, $4, $5, $6)`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key"`))

	err := repo.Create(&model.User{ID: "u1", Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT id, email, password_hash, role, email_verified_at, created_at FROM users WHERE email = $1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserSetRole(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(`UPDATE users SET role = $1 WHERE email = $2`).
		WithArgs(model.RoleOperator, "owner@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET role = $1 WHERE email = $2`).
		WithArgs(model.RoleOperator, "ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SetRole("owner@example.com", model.RoleOperator))
	assert.ErrorIs(t, repo.SetRole("ghost@example.com", model.RoleOperator), ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeTokenOnce(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTokenRepository(db)

	query := `
		UPDATE tokens
		SET used_at = $1
		WHERE token = $2
		AND type = $3
		AND used_at IS NULL
		AND expires_at > $4
		RETURNING *
	`
	cols := []string{"id", "user_id", "type", "token", "expires_at", "used_at", "created_at"}
	now := time.Now()
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "abc", model.TokenTypePasswordReset, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("t1", "u1", model.TokenTypePasswordReset, "abc", now.Add(time.Hour), now, now))
	mock.ExpectQuery(query).
		WithArgs(sqlmock.AnyArg(), "abc", model.TokenTypePasswordReset, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols))

	tok, err := repo.ConsumeToken("abc", model.TokenTypePasswordReset)
	require.NoError(t, err)
	assert.Equal(t, "u1", tok.UserID)

	_, err = repo.ConsumeToken("abc", model.TokenTypePasswordReset)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
