package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/status"
)

// AuthStore wraps the built-in users auth collection.
type AuthStore struct {
	app core.App
}

func NewAuthStore(app core.App) *AuthStore {
	return &AuthStore{app: app}
}

// Login checks the password and returns the user id with a fresh auth token.
func (s *AuthStore) Login(ctx context.Context, email, password string) (string, string, error) {
	record, err := s.app.FindAuthRecordByEmail(CollectionUsers, email)
	if err != nil || !record.ValidatePassword(password) {
		return "", "", status.ErrInvalidCredentials
	}
	token, err := record.NewAuthToken()
	if err != nil {
		return "", "", fmt.Errorf("issue auth token: %w", err)
	}
	return record.Id, token, nil
}

// Register creates a user and returns its id with an auth token.
func (s *AuthStore) Register(ctx context.Context, email, password, name string) (string, string, error) {
	collection, err := s.app.FindCollectionByNameOrId(CollectionUsers)
	if err != nil {
		return "", "", fmt.Errorf("find users collection: %w", err)
	}
	record := core.NewRecord(collection)
	record.SetEmail(email)
	record.SetPassword(password)
	record.Set("name", name)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return "", "", saveErr(err, "user")
	}
	token, err := record.NewAuthToken()
	if err != nil {
		return "", "", fmt.Errorf("issue auth token: %w", err)
	}
	return record.Id, token, nil
}

// DeleteUser removes a user; used to roll back a signup whose profile failed.
func (s *AuthStore) DeleteUser(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById(CollectionUsers, id)
	if err != nil {
		return notFound(err, "user "+id)
	}
	return s.app.DeleteWithContext(ctx, record)
}
