package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"institute-events/internal/status"
	"institute-events/models"
)

func TestAuthService_Login(t *testing.T) {
	auth := &MockAuthRepository{}
	service := NewAuthService(auth, &MockProfileRepository{})
	ctx := context.Background()

	auth.On("Login", ctx, "ana@example.com", "secret123").Return("user-1", "tok", nil)
	auth.On("Login", ctx, "ana@example.com", "wrong").Return("", "", status.ErrInvalidCredentials)

	session, err := service.Login(ctx, " ana@example.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "tok", session.Token)

	_, err = service.Login(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, status.ErrInvalidCredentials)

	_, err = service.Login(ctx, "not-an-email", "x")
	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestAuthService_Signup_CreatesViewerProfile(t *testing.T) {
	auth := &MockAuthRepository{}
	profiles := &MockProfileRepository{}
	service := NewAuthService(auth, profiles)
	ctx := context.Background()

	auth.On("Register", ctx, "ana@example.com", "secret123", "ana").Return("user-1", "tok", nil)
	profiles.On("Create", ctx, mock.MatchedBy(func(p *models.Profile) bool {
		return p.ID == "user-1" && p.Role == models.RoleViewer && p.Name == "ana"
	})).Return(nil)

	session, err := service.Signup(ctx, "ana@example.com", "secret123", "")

	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	profiles.AssertExpectations(t)
	auth.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
}

func TestAuthService_Signup_RollsBackUser(t *testing.T) {
	auth := &MockAuthRepository{}
	profiles := &MockProfileRepository{}
	service := NewAuthService(auth, profiles)
	ctx := context.Background()

	auth.On("Register", ctx, "ana@example.com", "secret123", "Ana").Return("user-1", "tok", nil)
	profiles.On("Create", ctx, mock.Anything).Return(errors.New("db down"))
	auth.On("DeleteUser", ctx, "user-1").Return(nil)

	_, err := service.Signup(ctx, "ana@example.com", "secret123", "Ana")

	assert.Error(t, err)
	auth.AssertCalled(t, "DeleteUser", ctx, "user-1")
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	auth := &MockAuthRepository{}
	service := NewAuthService(auth, &MockProfileRepository{})

	_, err := service.Signup(context.Background(), "ana@example.com", "abc", "Ana")

	assert.ErrorIs(t, err, status.ErrValidation)
	auth.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
