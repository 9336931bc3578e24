package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"institute-events/internal/notify"
	"institute-events/internal/schema"
	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/monitoring"
	"institute-events/utils"
)

type TicketService struct {
	tickets  TicketRepository
	events   EventRepository
	views    ViewCache
	notifier Notifier
	now      func() time.Time
}

func NewTicketService(tickets TicketRepository, events EventRepository, views ViewCache, notifier Notifier) *TicketService {
	return &TicketService{
		tickets:  tickets,
		events:   events,
		views:    views,
		notifier: notifier,
		now:      time.Now,
	}
}

// Book reserves a ticket for the signed-in user. A user holds at most one
// ticket per event.
func (s *TicketService) Book(ctx context.Context, userID, eventID, guestRaw string) (*models.Ticket, error) {
	if userID == "" {
		return nil, status.ErrUnauthorized
	}
	guests, err := schema.GuestCount(guestRaw)
	if err != nil {
		return nil, err
	}
	if _, err := s.events.Get(ctx, eventID); err != nil {
		return nil, err
	}

	existing, err := s.tickets.FindByEventAndUser(ctx, eventID, userID)
	switch {
	case err == nil && existing != nil:
		return nil, status.ErrAlreadyBooked
	case err != nil && !errors.Is(err, status.ErrNotFound):
		return nil, err
	}

	code, err := utils.TicketCode(s.now())
	if err != nil {
		return nil, fmt.Errorf("generate ticket code: %w", err)
	}
	ticket := &models.Ticket{
		EventID:    eventID,
		UserID:     userID,
		TicketCode: code,
		Status:     models.TicketConfirmed,
		GuestCount: guests,
	}

	err = s.tickets.Create(ctx, ticket)
	if errors.Is(err, status.ErrConflict) {
		err = fmt.Errorf("%w: %w", status.ErrAlreadyBooked, err)
	}
	monitoring.TrackAction("book_ticket", err)
	if err != nil {
		slog.Error("booking failed", "event", eventID, "user", userID, "error", err)
		return nil, err
	}

	slog.Info("ticket booked", "event", eventID, "user", userID, "code", ticket.TicketCode)
	revalidate(ctx, s.views, s.notifier, s.now(), notify.Update{
		Type:     notify.TypeTicketBooked,
		Action:   "create",
		RecordID: ticket.ID,
		EventID:  eventID,
		Paths:    ticketPaths(eventID),
	})
	return ticket, nil
}

func (s *TicketService) UpdateStatus(ctx context.Context, id, ticketStatus string) (*models.Ticket, error) {
	if err := schema.TicketStatus(ticketStatus); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.UpdateStatus(ctx, id, ticketStatus)
	monitoring.TrackAction("update_ticket", err)
	if err != nil {
		slog.Error("ticket status update failed", "id", id, "status", ticketStatus, "error", err)
		return nil, err
	}

	revalidate(ctx, s.views, s.notifier, s.now(), notify.Update{
		Type:     notify.TypeTicketStatus,
		Action:   ticketStatus,
		RecordID: ticket.ID,
		EventID:  ticket.EventID,
		Paths:    ticketPaths(ticket.EventID),
	})
	return ticket, nil
}

// List returns the tickets grid, newest first.
func (s *TicketService) List(ctx context.Context) ([]models.TicketRow, error) {
	return cached(ctx, s.views, PathTickets, func() ([]models.TicketRow, error) {
		return s.tickets.List(ctx)
	})
}

func ticketPaths(eventID string) []string {
	return []string{PathDashboard, PathDashboardEvents, DashboardEventPath(eventID), PathTickets}
}
