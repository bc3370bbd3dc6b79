package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
)

var ErrUnknownRole = errors.New("unknown role")

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// SetRole grants or revokes dashboard access for the account with email.
func (s *UserService) SetRole(email, role string) error {
	if role != model.RoleCustomer && role != model.RoleOperator {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	email = strings.TrimSpace(strings.ToLower(email))
	err := s.userRepository.SetRole(email, role)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	slog.Info("role changed", "email", email, "role", role)
	return nil
}
