package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/schema"
	"institute-events/models"
	"institute-events/services"
)

type EventHandler struct {
	Responder
	events *services.EventService
}

func NewEventHandler(r Responder, events *services.EventService) *EventHandler {
	return &EventHandler{Responder: r, events: events}
}

// Dashboard returns the dashboard stats and upcoming events.
func (h *EventHandler) Dashboard(e *core.RequestEvent) error {
	view, err := h.events.Dashboard(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, view)
}

// List returns the events list filtered by the filter, year, month and week
// query values.
func (h *EventHandler) List(e *core.RequestEvent) error {
	q := e.Request.URL.Query()
	filter := services.ParseEventFilter(q.Get("filter"), q.Get("year"), q.Get("month"), q.Get("week"))

	events, err := h.events.List(e.Request.Context(), filter)
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, map[string]any{
		"filter":     filter,
		"events":     events,
		"categories": models.Categories,
	})
}

// Get returns one event for the edit form.
func (h *EventHandler) Get(e *core.RequestEvent) error {
	event, err := h.events.Get(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	var form schema.EventForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	id, err := h.events.Create(e.Request.Context(), userID(e), form)
	if err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathDashboardEvents, map[string]any{"id": id})
}

func (h *EventHandler) Update(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	var form schema.EventForm
	if err := e.BindBody(&form); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.events.Update(e.Request.Context(), id, form); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathDashboardEvents, map[string]any{"id": id})
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	id := e.Request.PathValue("id")
	if err := h.events.Delete(e.Request.Context(), id); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathDashboardEvents, map[string]any{"id": id})
}

// Calendar returns the calendar feed.
func (h *EventHandler) Calendar(e *core.RequestEvent) error {
	entries, err := h.events.Calendar(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, entries)
}
