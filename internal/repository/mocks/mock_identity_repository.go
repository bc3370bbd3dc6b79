package mocks

import (
	"github.com/rihla-travel/portal/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) ByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepository) SetRole(email, role string) error {
	return m.Called(email, role).Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) ByUserID(userID string) (*model.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(profile *model.Profile) error {
	return m.Called(profile).Error(0)
}

func (m *MockProfileRepository) Update(userID, name, phone string) error {
	return m.Called(userID, name, phone).Error(0)
}

func (m *MockProfileRepository) UpdateAvatar(userID, avatarURL string) error {
	return m.Called(userID, avatarURL).Error(0)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(token *model.Token) error {
	return m.Called(token).Error(0)
}

func (m *MockTokenRepository) ConsumeToken(token, tokenType string) (*model.Token, error) {
	args := m.Called(token, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepository) Peek(token, tokenType string) (*model.Token, error) {
	args := m.Called(token, tokenType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepository) DeleteByUserAndType(userID, tokenType string) error {
	return m.Called(userID, tokenType).Error(0)
}
