package handlers

import (
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/messaging"
	"institute-events/services"
)

type MessageHandler struct {
	Responder
	messages *services.MessageService
}

func NewMessageHandler(r Responder, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{Responder: r, messages: messages}
}

func (h *MessageHandler) Queue(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.messages.Queue(userID(e)))
}

// Process builds a new queue from the pasted contacts.
func (h *MessageHandler) Process(e *core.RequestEvent) error {
	var req struct {
		Contacts string `json:"contacts" form:"contacts"`
		Message  string `json:"message" form:"message"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	view, err := h.messages.Process(userID(e), req.Contacts, req.Message)
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, view)
}

// Send returns the personalized chat link for one queue item and marks it
// sent. The client opens the link.
func (h *MessageHandler) Send(e *core.RequestEvent) error {
	id, err := strconv.Atoi(e.Request.PathValue("item"))
	if err != nil {
		return apis.NewBadRequestError("Invalid queue item", err)
	}
	var req struct {
		Message string `json:"message" form:"message"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	link, view, err := h.messages.Send(e.Request.Context(), userID(e), id, req.Message)
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, map[string]any{"link": link, "queue": view})
}

func (h *MessageHandler) Reset(e *core.RequestEvent) error {
	h.messages.Reset(userID(e))
	return e.JSON(http.StatusOK, h.messages.Queue(userID(e)))
}

func (h *MessageHandler) Templates(e *core.RequestEvent) error {
	templates, err := h.messages.Templates(e.Request.Context(), userID(e))
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, templates)
}

func (h *MessageHandler) SaveTemplate(e *core.RequestEvent) error {
	var t messaging.Template
	if err := e.BindBody(&t); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	templates, err := h.messages.SaveTemplate(e.Request.Context(), userID(e), t)
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, map[string]any{
		"message":   h.message(e, "success.template_saved", nil),
		"templates": templates,
	})
}

func (h *MessageHandler) DeleteTemplate(e *core.RequestEvent) error {
	index, err := strconv.Atoi(e.Request.PathValue("index"))
	if err != nil {
		return apis.NewBadRequestError("Invalid template index", err)
	}

	templates, err := h.messages.DeleteTemplate(e.Request.Context(), userID(e), index)
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, templates)
}
