package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/status"
	"institute-events/services"
)

type TicketHandler struct {
	Responder
	tickets *services.TicketService
}

func NewTicketHandler(r Responder, tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{Responder: r, tickets: tickets}
}

// Book reserves a ticket for the signed-in user.
func (h *TicketHandler) Book(e *core.RequestEvent) error {
	var req struct {
		GuestCount string `json:"guest_count" form:"guest_count"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	eventID := e.Request.PathValue("id")
	back := services.PublicEventPath(eventID)

	ticket, err := h.tickets.Book(e.Request.Context(), userID(e), eventID, req.GuestCount)
	if errors.Is(err, status.ErrUnauthorized) {
		code, _ := classify(err)
		if !wantsJSON(e) {
			return e.Redirect(http.StatusSeeOther, loginPath)
		}
		return e.JSON(code, map[string]any{"error": h.message(e, "error.login_required", nil)})
	}
	if err != nil {
		return h.fail(e, err, back)
	}

	msg := h.message(e, "success.booked", map[string]any{"Code": ticket.TicketCode})
	return h.succeed(e, withQuery(back, "success", msg), map[string]any{
		"message": msg,
		"ticket":  ticket,
	})
}

func (h *TicketHandler) UpdateStatus(e *core.RequestEvent) error {
	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	ticket, err := h.tickets.UpdateStatus(e.Request.Context(), e.Request.PathValue("id"), req.Status)
	if err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathTickets, map[string]any{"ticket": ticket})
}

// List returns the tickets grid.
func (h *TicketHandler) List(e *core.RequestEvent) error {
	rows, err := h.tickets.List(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, rows)
}
