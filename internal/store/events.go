package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/models"
)

type EventStore struct {
	app core.App
}

func NewEventStore(app core.App) *EventStore {
	return &EventStore{app: app}
}

// List returns every event ordered by date, earliest first.
func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	records, err := s.app.FindRecordsByFilter(CollectionEvents, "", "event_date,start_time", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return toEvents(records), nil
}

func (s *EventStore) ListPublished(ctx context.Context) ([]models.Event, error) {
	records, err := s.app.FindRecordsByFilter(CollectionEvents, "is_published = true", "event_date,start_time", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}
	return toEvents(records), nil
}

// Upcoming returns up to limit events on or after today, earliest first.
func (s *EventStore) Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error) {
	records, err := s.app.FindRecordsByFilter(
		CollectionEvents,
		"event_date >= {:today}",
		"event_date,start_time",
		limit,
		0,
		dbx.Params{"today": today},
	)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return toEvents(records), nil
}

// Counts returns the total and published event counts.
func (s *EventStore) Counts(ctx context.Context) (total, published int64, err error) {
	total, err = s.app.CountRecords(CollectionEvents)
	if err != nil {
		return 0, 0, fmt.Errorf("count events: %w", err)
	}
	published, err = s.app.CountRecords(CollectionEvents, dbx.HashExp{"is_published": true})
	if err != nil {
		return 0, 0, fmt.Errorf("count published events: %w", err)
	}
	return total, published, nil
}

func (s *EventStore) Get(ctx context.Context, id string) (*models.Event, error) {
	record, err := s.app.FindRecordById(CollectionEvents, id)
	if err != nil {
		return nil, notFound(err, "event "+id)
	}
	e := toEvent(record)
	return &e, nil
}

func (s *EventStore) Create(ctx context.Context, in models.EventInput, createdBy string) (string, error) {
	collection, err := s.app.FindCollectionByNameOrId(CollectionEvents)
	if err != nil {
		return "", fmt.Errorf("find events collection: %w", err)
	}
	record := core.NewRecord(collection)
	setEvent(record, in)
	record.Set("created_by", createdBy)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return "", saveErr(err, "event")
	}
	return record.Id, nil
}

func (s *EventStore) Update(ctx context.Context, id string, in models.EventInput) error {
	record, err := s.app.FindRecordById(CollectionEvents, id)
	if err != nil {
		return notFound(err, "event "+id)
	}
	setEvent(record, in)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "event")
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	record, err := s.app.FindRecordById(CollectionEvents, id)
	if err != nil {
		return notFound(err, "event "+id)
	}
	if err := s.app.DeleteWithContext(ctx, record); err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	return nil
}

func setEvent(record *core.Record, in models.EventInput) {
	agenda := in.Agenda
	if agenda == nil {
		agenda = []models.AgendaItem{}
	}
	record.Set("title", in.Title)
	record.Set("description", in.Description)
	record.Set("event_date", in.EventDate)
	record.Set("start_time", in.StartTime)
	record.Set("end_time", in.EndTime)
	record.Set("venue", in.Venue)
	record.Set("category", in.Category)
	record.Set("organizer", in.Organizer)
	record.Set("poster_url", in.PosterURL)
	record.Set("is_published", in.IsPublished)
	record.Set("agenda", agenda)
}

func toEvent(r *core.Record) models.Event {
	agenda := []models.AgendaItem{}
	_ = r.UnmarshalJSONField("agenda", &agenda)
	if agenda == nil {
		agenda = []models.AgendaItem{}
	}
	return models.Event{
		ID:          r.Id,
		Title:       r.GetString("title"),
		Description: r.GetString("description"),
		EventDate:   r.GetString("event_date"),
		StartTime:   r.GetString("start_time"),
		EndTime:     r.GetString("end_time"),
		Venue:       r.GetString("venue"),
		Category:    r.GetString("category"),
		Organizer:   r.GetString("organizer"),
		PosterURL:   r.GetString("poster_url"),
		IsPublished: r.GetBool("is_published"),
		Agenda:      agenda,
		CreatedBy:   r.GetString("created_by"),
		CreatedAt:   r.GetDateTime("created").Time(),
	}
}

func toEvents(records []*core.Record) []models.Event {
	events := make([]models.Event, len(records))
	for i, r := range records {
		events[i] = toEvent(r)
	}
	return events
}
