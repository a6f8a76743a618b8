package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "tasklist/internal/errors"
	"tasklist/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(m *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful creation",
			username: "alice",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "taken",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:     "duplicate slips past pre-check, caught by unique index",
			username: "raced",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "raced").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.CreateUser(context.Background(), tt.username, "secret")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				// Stored as a bcrypt hash, never verbatim.
				assert.NotEqual(t, "secret", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser_PartialUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	originalHash := hashFor(t, "keepme")
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{
		ID:           3,
		Username:     "old",
		PasswordHash: originalHash,
	}, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	newName := "renamed"
	user, err := svc.UpdateUser(context.Background(), 3, UserUpdate{Username: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "renamed", user.Username)
	assert.Equal(t, originalHash, user.PasswordHash)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	originalHash := hashFor(t, "oldpass")
	mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{
		ID:           3,
		Username:     "alice",
		PasswordHash: originalHash,
	}, nil)
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	newPass := "newpass"
	user, err := svc.UpdateUser(context.Background(), 3, UserUpdate{Password: &newPass})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, originalHash, user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.UpdateUser(context.Background(), 99, UserUpdate{})

	assert.Equal(t, apperrors.ErrUserNotFound, err)
	assert.Nil(t, user)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3}, nil)
		mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil)

		svc := NewUserService(mockRepo, nil)
		assert.NoError(t, svc.DeleteUser(context.Background(), 3))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user is 404, not silent success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		assert.Equal(t, apperrors.ErrUserNotFound, svc.DeleteUser(context.Background(), 99))
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.GetUser(context.Background(), 99)

	assert.Equal(t, apperrors.ErrUserNotFound, err)
	assert.Nil(t, user)
	mockRepo.AssertExpectations(t)
}
