package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "tasklist/internal/errors"
	"tasklist/internal/model"
	"tasklist/internal/service"
)

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id uint, update service.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserHandler_CreateUser(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		setupMock    func(m *MockUserService)
		expectedCode int
	}{
		{
			name: "created",
			body: `{"username": "alice", "password": "secret"}`,
			setupMock: func(m *MockUserService) {
				m.On("CreateUser", mock.Anything, "alice", "secret").
					Return(&model.User{ID: 1, Username: "alice"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "missing password",
			body:         `{"username": "alice"}`,
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing username",
			body:         `{"password": "secret"}`,
			setupMock:    func(m *MockUserService) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "duplicate username",
			body: `{"username": "taken", "password": "whatever"}`,
			setupMock: func(m *MockUserService) {
				m.On("CreateUser", mock.Anything, "taken", "whatever").
					Return(nil, apperrors.ErrUsernameTaken)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockUserService)
			tt.setupMock(mockSvc)
			h := NewUserHandler(mockSvc)

			c, rec := newTestContext(t, http.MethodPost, "/users", tt.body)
			err := h.CreateUser(c)

			if tt.expectedCode == http.StatusCreated {
				assert.NoError(t, err)
				assert.Equal(t, http.StatusCreated, rec.Code)
				assert.Contains(t, rec.Body.String(), `"user created"`)
				assert.NotContains(t, rec.Body.String(), "secret")
			} else {
				var he *echo.HTTPError
				assert.ErrorAs(t, err, &he)
				assert.Equal(t, tt.expectedCode, he.Code)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("GetUser", mock.Anything, uint(99)).Return(nil, apperrors.ErrUserNotFound)
	h := NewUserHandler(mockSvc)

	c, _ := newTestContext(t, http.MethodGet, "/users/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := h.GetUser(c)

	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("DeleteUser", mock.Anything, uint(99)).Return(apperrors.ErrUserNotFound)
	h := NewUserHandler(mockSvc)

	c, _ := newTestContext(t, http.MethodDelete, "/users/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := h.DeleteUser(c)

	var he *echo.HTTPError
	assert.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_UpdateUser_PartialBody(t *testing.T) {
	mockSvc := new(MockUserService)
	mockSvc.On("UpdateUser", mock.Anything, uint(3), mock.MatchedBy(func(u service.UserUpdate) bool {
		return u.Username != nil && *u.Username == "renamed" && u.Password == nil
	})).Return(&model.User{ID: 3, Username: "renamed"}, nil)
	h := NewUserHandler(mockSvc)

	c, rec := newTestContext(t, http.MethodPut, "/users/3", `{"username": "renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")
	err := h.UpdateUser(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user updated"`)
	mockSvc.AssertExpectations(t)
}
