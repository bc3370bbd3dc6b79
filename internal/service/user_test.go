package service

import (
	"testing"

	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/rihla-travel/portal/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
)

func TestSetRole(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := NewUserService(users)

	users.On("SetRole", "owner@example.com", model.RoleOperator).Return(nil)
	users.On("SetRole", "ghost@example.com", model.RoleCustomer).Return(repository.ErrUserNotFound)

	assert.NoError(t, svc.SetRole(" Owner@Example.com", model.RoleOperator))
	assert.ErrorIs(t, svc.SetRole("ghost@example.com", model.RoleCustomer), repository.ErrUserNotFound)
	assert.ErrorIs(t, svc.SetRole("owner@example.com", "admin"), ErrUnknownRole)
	users.AssertNumberOfCalls(t, "SetRole", 2)
}
