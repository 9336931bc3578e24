package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/models"
)

type TicketStore struct {
	app core.App
}

func NewTicketStore(app core.App) *TicketStore {
	return &TicketStore{app: app}
}

// FindByEventAndUser returns the ticket a user holds for an event.
func (s *TicketStore) FindByEventAndUser(ctx context.Context, eventID, userID string) (*models.Ticket, error) {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionTickets,
		"event_id = {:event} && user_id = {:user}",
		dbx.Params{"event": eventID, "user": userID},
	)
	if err != nil {
		return nil, notFound(err, "ticket")
	}
	t := toTicket(record)
	return &t, nil
}

func (s *TicketStore) Create(ctx context.Context, t *models.Ticket) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionTickets)
	if err != nil {
		return fmt.Errorf("find tickets collection: %w", err)
	}
	record := core.NewRecord(collection)
	record.Set("event_id", t.EventID)
	record.Set("user_id", t.UserID)
	record.Set("ticket_code", t.TicketCode)
	record.Set("status", t.Status)
	record.Set("guest_count", t.GuestCount)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "ticket")
	}
	t.ID = record.Id
	t.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

func (s *TicketStore) UpdateStatus(ctx context.Context, id, ticketStatus string) (*models.Ticket, error) {
	record, err := s.app.FindRecordById(CollectionTickets, id)
	if err != nil {
		return nil, notFound(err, "ticket "+id)
	}
	record.Set("status", ticketStatus)
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return nil, saveErr(err, "ticket")
	}
	t := toTicket(record)
	return &t, nil
}

// List returns all tickets newest first, joined with the event title and the
// holder's profile name.
func (s *TicketStore) List(ctx context.Context) ([]models.TicketRow, error) {
	records, err := s.app.FindRecordsByFilter(CollectionTickets, "", "-created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}

	eventIDs := make([]string, 0, len(records))
	userIDs := make([]string, 0, len(records))
	for _, r := range records {
		eventIDs = append(eventIDs, r.GetString("event_id"))
		userIDs = append(userIDs, r.GetString("user_id"))
	}

	titles, err := s.fieldByID(CollectionEvents, eventIDs, "title")
	if err != nil {
		return nil, err
	}
	names, err := s.fieldByID(CollectionProfiles, userIDs, "name")
	if err != nil {
		return nil, err
	}

	rows := make([]models.TicketRow, len(records))
	for i, r := range records {
		t := toTicket(r)
		rows[i] = models.TicketRow{
			Ticket:      t,
			EventTitle:  titles[t.EventID],
			ProfileName: names[t.UserID],
		}
	}
	return rows, nil
}

func (s *TicketStore) fieldByID(collection string, ids []string, field string) (map[string]string, error) {
	out := map[string]string{}
	if len(ids) == 0 {
		return out, nil
	}
	records, err := s.app.FindRecordsByIds(collection, uniq(ids))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	for _, r := range records {
		out[r.Id] = r.GetString(field)
	}
	return out, nil
}

func toTicket(r *core.Record) models.Ticket {
	return models.Ticket{
		ID:         r.Id,
		EventID:    r.GetString("event_id"),
		UserID:     r.GetString("user_id"),
		TicketCode: r.GetString("ticket_code"),
		Status:     r.GetString("status"),
		GuestCount: r.GetInt("guest_count"),
		CreatedAt:  r.GetDateTime("created").Time(),
	}
}

func uniq(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
