package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/models"
	"institute-events/services"
)

const maxImportSize = 5 << 20

type StaffHandler struct {
	Responder
	staff    *services.StaffService
	profiles *services.ProfileService
}

func NewStaffHandler(r Responder, staff *services.StaffService, profiles *services.ProfileService) *StaffHandler {
	return &StaffHandler{Responder: r, staff: staff, profiles: profiles}
}

// Grid returns staff members with today's attendance.
func (h *StaffHandler) Grid(e *core.RequestEvent) error {
	rows, err := h.staff.Grid(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, rows)
}

// MarkAttendance records a check_in or check_out for today.
func (h *StaffHandler) MarkAttendance(e *core.RequestEvent) error {
	var req struct {
		Type string `json:"type" form:"type"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.staff.MarkAttendance(e.Request.Context(), e.Request.PathValue("id"), req.Type); err != nil {
		return h.fail(e, err, "")
	}

	key := "success.checked_in"
	if req.Type == models.AttendanceCheckOut {
		key = "success.checked_out"
	}
	return h.succeed(e, services.PathStaff, map[string]any{"message": h.message(e, key, nil)})
}

func (h *StaffHandler) Create(e *core.RequestEvent) error {
	var member models.StaffMember
	if err := e.BindBody(&member); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	member.ID = ""

	if err := h.staff.AddMember(e.Request.Context(), &member); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathStaff, map[string]any{"member": member})
}

// Import adds staff members from an uploaded .xlsx file (form field "file").
func (h *StaffHandler) Import(e *core.RequestEvent) error {
	if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": h.message(e, "error.import_file", nil)})
	}
	file, _, err := e.Request.FormFile("file")
	if err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": h.message(e, "error.import_file", nil)})
	}
	defer file.Close()

	result, err := h.staff.Import(e.Request.Context(), file)
	if err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathStaff, map[string]any{
		"message": h.message(e, "success.imported", map[string]any{"Count": result.Imported}),
		"result":  result,
	})
}

// Profiles returns every profile for role management.
func (h *StaffHandler) Profiles(e *core.RequestEvent) error {
	profiles, err := h.profiles.List(e.Request.Context())
	if err != nil {
		return h.fail(e, err, "")
	}
	return e.JSON(http.StatusOK, map[string]any{"profiles": profiles, "roles": models.Roles})
}

func (h *StaffHandler) UpdateRole(e *core.RequestEvent) error {
	var req struct {
		Role string `json:"role" form:"role"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}

	if err := h.profiles.UpdateRole(e.Request.Context(), userID(e), e.Request.PathValue("id"), req.Role); err != nil {
		return h.fail(e, err, "")
	}
	return h.succeed(e, services.PathStaff, nil)
}
