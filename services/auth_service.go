package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"institute-events/internal/schema"
	"institute-events/models"
	"institute-events/monitoring"
)

// Session is the result of a successful login or signup.
type Session struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

type AuthService struct {
	auth     AuthRepository
	profiles ProfileRepository
}

func NewAuthService(auth AuthRepository, profiles ProfileRepository) *AuthService {
	return &AuthService{auth: auth, profiles: profiles}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if err := schema.Credentials(email, password); err != nil {
		return nil, err
	}
	userID, token, err := s.auth.Login(ctx, email, password)
	monitoring.TrackAction("login", err)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, err
	}
	return &Session{UserID: userID, Token: token}, nil
}

// Signup creates a user with a viewer profile. The user is removed again when
// the profile cannot be stored.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if err := schema.Registration(email, password); err != nil {
		return nil, err
	}
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	userID, token, err := s.auth.Register(ctx, email, password, name)
	if err != nil {
		monitoring.TrackAction("signup", err)
		return nil, err
	}

	profile := &models.Profile{ID: userID, Name: name, Role: models.RoleViewer}
	if err := s.profiles.Create(ctx, profile); err != nil {
		monitoring.TrackAction("signup", err)
		if derr := s.auth.DeleteUser(ctx, userID); derr != nil {
			slog.Error("signup rollback failed", "user", userID, "error", derr)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	monitoring.TrackAction("signup", nil)
	slog.Info("user signed up", "user", userID)
	return &Session{UserID: userID, Token: token}, nil
}
