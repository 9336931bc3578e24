package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/export"
	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/services"
)

// publicEvent is an event as shown on the public site.
type publicEvent struct {
	models.Event
	Day   string
	Time  string
	Color string
}

type PublicHandler struct {
	Responder
	pages  *Pages
	events *services.EventService
	colors export.Colors
}

func NewPublicHandler(r Responder, pages *Pages, events *services.EventService) *PublicHandler {
	return &PublicHandler{Responder: r, pages: pages, events: events, colors: export.DefaultColors()}
}

// Events lists published events.
func (h *PublicHandler) Events(e *core.RequestEvent) error {
	events, err := h.events.PublicList(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	view := make([]publicEvent, len(events))
	for i, ev := range events {
		view[i] = h.present(ev)
	}
	if wantsJSON(e) {
		return e.JSON(http.StatusOK, events)
	}
	return h.pages.render(e, http.StatusOK, pageEvents, map[string]any{"Events": view})
}

// Event shows one published event. Drafts and unknown ids are 404.
func (h *PublicHandler) Event(e *core.RequestEvent) error {
	event, err := h.events.PublicGet(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		if errors.Is(err, status.ErrNotFound) && !wantsJSON(e) {
			return notFoundPage(e, h.pages)
		}
		return h.fail(e, err, "")
	}
	if wantsJSON(e) {
		return e.JSON(http.StatusOK, event)
	}

	description, err := renderMarkdown(event.Description)
	if err != nil {
		return h.fail(e, err, "")
	}
	return h.pages.render(e, http.StatusOK, pageEvent, map[string]any{
		"Event":       h.present(*event),
		"Description": description,
		"Error":       e.Request.URL.Query().Get("error"),
		"Success":     e.Request.URL.Query().Get("success"),
	})
}

func (h *PublicHandler) present(e models.Event) publicEvent {
	p := publicEvent{Event: e, Color: h.colors.For(e.Category).Hex()}
	if d := e.Date(); !d.IsZero() {
		p.Day = d.Format("Monday, 02 January 2006")
	}
	if e.StartTime != "" {
		p.Time = models.ShortTime(e.StartTime)
		if e.EndTime != "" {
			p.Time += " - " + models.ShortTime(e.EndTime)
		}
	}
	return p
}
