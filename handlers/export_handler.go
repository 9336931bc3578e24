package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/internal/export"
	"institute-events/services"
)

type ExportHandler struct {
	Responder
	exports *services.ExportService
}

func NewExportHandler(r Responder, exports *services.ExportService) *ExportHandler {
	return &ExportHandler{Responder: r, exports: exports}
}

// Dialog returns the events, months, categories and resolved options the
// export dialog offers.
func (h *ExportHandler) Dialog(e *core.RequestEvent) error {
	dialog, err := h.exports.Dialog(e.Request.Context(), userID(e))
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, dialog)
}

// Spreadsheet downloads the selected events as Events_Export.xlsx.
func (h *ExportHandler) Spreadsheet(e *core.RequestEvent) error {
	buf, err := h.exports.Spreadsheet(e.Request.Context(), selectionFromQuery(e.Request.URL.Query()))
	if err != nil {
		return h.fail(e, err, "")
	}
	return attachment(e, export.SpreadsheetFile, export.SpreadsheetMIME, buf.Bytes())
}

// Document downloads the PDF calendar built from the posted options.
func (h *ExportHandler) Document(e *core.RequestEvent) error {
	var req services.DocumentRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Selection.Month == "" {
		req.Selection.Month = export.AllValues
	}
	if req.Selection.Category == "" {
		req.Selection.Category = export.AllValues
	}

	buf, err := h.exports.Document(e.Request.Context(), userID(e), req)
	if err != nil {
		return h.fail(e, err, "")
	}
	return attachment(e, export.DocumentFile, export.DocumentMIME, buf.Bytes())
}

func (h *ExportHandler) Settings(e *core.RequestEvent) error {
	settings, err := h.exports.Settings(e.Request.Context(), userID(e))
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, settings)
}

func (h *ExportHandler) SaveSettings(e *core.RequestEvent) error {
	var settings export.Settings
	if err := e.BindBody(&settings); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if err := h.exports.SaveSettings(e.Request.Context(), userID(e), settings); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, "", map[string]any{"message": h.message(e, "success.settings_saved", nil)})
}

func (h *ExportHandler) ClearSettings(e *core.RequestEvent) error {
	if err := h.exports.ClearSettings(e.Request.Context(), userID(e)); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, "", nil)
}

func attachment(e *core.RequestEvent, name, mime string, body []byte) error {
	e.Response.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	return e.Blob(http.StatusOK, mime, body)
}
