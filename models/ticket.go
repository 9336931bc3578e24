package models

import (
	"slices"
	"time"
)

const (
	TicketConfirmed = "confirmed"
	TicketCancelled = "cancelled"
	TicketCheckedIn = "checked_in"
)

var TicketStatuses = []string{TicketConfirmed, TicketCancelled, TicketCheckedIn}

// MaxGuests is the largest guest count accepted on a booking.
const MaxGuests = 10

type Ticket struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	UserID     string    `json:"user_id"`
	TicketCode string    `json:"ticket_code"`
	Status     string    `json:"status"` // confirmed, cancelled, checked_in
	GuestCount int       `json:"guest_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// TicketRow is a ticket joined with its event title and holder name.
type TicketRow struct {
	Ticket
	EventTitle  string `json:"event_title"`
	ProfileName string `json:"profile_name"`
}

func ValidTicketStatus(status string) bool {
	return slices.Contains(TicketStatuses, status)
}
