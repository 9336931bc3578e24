package services

import (
	"context"
	"log/slog"

	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/monitoring"
)

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *ProfileService) Get(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.Get(ctx, id)
}

// UpdateRole changes a profile's role. Only admins may change roles.
func (s *ProfileService) UpdateRole(ctx context.Context, actorID, id, role string) error {
	if !models.ValidRole(role) {
		return status.ErrInvalidRole
	}
	actor, err := s.profiles.Get(ctx, actorID)
	if err != nil {
		return status.ErrForbidden
	}
	if !actor.IsAdmin() {
		return status.ErrForbidden
	}

	err = s.profiles.UpdateRole(ctx, id, role)
	monitoring.TrackAction("update_role", err)
	if err != nil {
		slog.Error("role update failed", "profile", id, "role", role, "error", err)
		return err
	}
	slog.Info("role updated", "profile", id, "role", role, "by", actorID)
	return nil
}
