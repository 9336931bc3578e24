package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/export"
	"institute-events/internal/i18n"
	"institute-events/internal/messaging"
	"institute-events/internal/schema"
	"institute-events/internal/status"
)

// errorKeys maps sentinel errors to an HTTP status and a message key, most
// specific first.
var errorKeys = []struct {
	err  error
	code int
	key  string
}{
	{status.ErrAlreadyBooked, http.StatusConflict, "error.already_booked"},
	{status.ErrAlreadyCheckedIn, http.StatusConflict, "error.already_checked_in"},
	{status.ErrNoCheckIn, http.StatusConflict, "error.no_check_in"},
	{status.ErrConflict, http.StatusConflict, "error.conflict"},
	{status.ErrInvalidCredentials, http.StatusUnauthorized, "error.invalid_credentials"},
	{status.ErrUnauthorized, http.StatusUnauthorized, "error.unauthorized"},
	{status.ErrForbidden, http.StatusForbidden, "error.forbidden"},
	{status.ErrInvalidRole, http.StatusBadRequest, "error.invalid_role"},
	{status.ErrNotFound, http.StatusNotFound, "error.not_found"},
	{status.ErrValidation, http.StatusBadRequest, "error.validation"},
	{messaging.ErrEmptyInput, http.StatusBadRequest, "messaging.empty_input"},
	{messaging.ErrEmptyMessage, http.StatusBadRequest, "messaging.empty_message"},
	{messaging.ErrNoValidNumbers, http.StatusBadRequest, "messaging.no_valid_numbers"},
	{messaging.ErrItemNotFound, http.StatusNotFound, "messaging.item_not_found"},
	{messaging.ErrTemplateName, http.StatusBadRequest, "messaging.template_name"},
	{messaging.ErrTemplateMissing, http.StatusNotFound, "messaging.template_missing"},
}

// Responder renders action results either as JSON or as a redirect,
// depending on what the client asked for.
type Responder struct {
	tr *i18n.Translator
}

func NewResponder(tr *i18n.Translator) Responder {
	return Responder{tr: tr}
}

// classify returns the HTTP status and message key for err.
func classify(err error) (int, string) {
	for _, k := range errorKeys {
		if errors.Is(err, k.err) {
			return k.code, k.key
		}
	}
	return http.StatusInternalServerError, "error.internal"
}

func (r Responder) message(e *core.RequestEvent, key string, data map[string]any) string {
	return r.tr.T(locale(e), key, data)
}

// fail reports err. JSON clients get {"error": ...} with a status code;
// form posts are redirected to back with ?error=.
func (r Responder) fail(e *core.RequestEvent, err error, back string) error {
	code, key := classify(err)
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "method", e.Request.Method, "path", e.Request.URL.Path, "error", err)
	}
	msg := r.message(e, key, nil)

	if back != "" && !wantsJSON(e) {
		return e.Redirect(http.StatusSeeOther, withQuery(back, "error", msg))
	}

	body := map[string]any{"error": msg}
	var verr *schema.Error
	if errors.As(err, &verr) {
		body["fields"] = verr.Messages()
	}
	return e.JSON(code, body)
}

// succeed answers a successful action: a redirect for form posts, the
// payload (plus success:true) for JSON clients.
func (r Responder) succeed(e *core.RequestEvent, redirect string, payload map[string]any) error {
	if redirect != "" && !wantsJSON(e) {
		return e.Redirect(http.StatusSeeOther, redirect)
	}
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return e.JSON(http.StatusOK, body)
}

// wantsJSON reports whether the client sent or accepts JSON rather than a
// plain HTML form post.
func wantsJSON(e *core.RequestEvent) bool {
	h := e.Request.Header
	return strings.Contains(h.Get("Accept"), "application/json") ||
		strings.HasPrefix(h.Get("Content-Type"), "application/json") ||
		h.Get("X-Requested-With") == "XMLHttpRequest"
}

func locale(e *core.RequestEvent) string {
	if l := e.Request.URL.Query().Get("lang"); l != "" {
		return l
	}
	return e.Request.Header.Get("Accept-Language")
}

func userID(e *core.RequestEvent) string {
	if e.Auth == nil {
		return ""
	}
	return e.Auth.Id
}

func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// selectionFromQuery reads the export selection from month, category and
// repeated id query values.
func selectionFromQuery(q url.Values) export.Selection {
	sel := export.Selection{
		Month:    q.Get("month"),
		Category: q.Get("category"),
		IDs:      q["id"],
	}
	if sel.Month == "" {
		sel.Month = export.AllValues
	}
	if sel.Category == "" {
		sel.Category = export.AllValues
	}
	return sel
}
