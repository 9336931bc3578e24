package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"institute-events/models"
)

type ProfileStore struct {
	app core.App
}

func NewProfileStore(app core.App) *ProfileStore {
	return &ProfileStore{app: app}
}

func (s *ProfileStore) List(ctx context.Context) ([]models.Profile, error) {
	records, err := s.app.FindRecordsByFilter(CollectionProfiles, "", "-created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]models.Profile, len(records))
	for i, r := range records {
		profiles[i] = toProfile(r)
	}
	return profiles, nil
}

func (s *ProfileStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	record, err := s.app.FindRecordById(CollectionProfiles, id)
	if err != nil {
		return nil, notFound(err, "profile "+id)
	}
	p := toProfile(record)
	return &p, nil
}

// Create stores a profile whose id is the id of its auth user.
func (s *ProfileStore) Create(ctx context.Context, p *models.Profile) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionProfiles)
	if err != nil {
		return fmt.Errorf("find profiles collection: %w", err)
	}
	record := core.NewRecord(collection)
	record.Set("id", p.ID)
	record.Set("user", p.ID)
	record.Set("name", p.Name)
	record.Set("role", p.Role)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "profile")
	}
	p.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

func (s *ProfileStore) UpdateRole(ctx context.Context, id, role string) error {
	record, err := s.app.FindRecordById(CollectionProfiles, id)
	if err != nil {
		return notFound(err, "profile "+id)
	}
	record.Set("role", role)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "profile")
	}
	return nil
}

func toProfile(r *core.Record) models.Profile {
	return models.Profile{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Role:      r.GetString("role"),
		CreatedAt: r.GetDateTime("created").Time(),
	}
}
