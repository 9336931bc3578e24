package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"institute-events/internal/export"
	"institute-events/internal/notify"
	"institute-events/internal/schema"
	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/monitoring"
)

// ImportResult reports a staff spreadsheet import.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  []string `json:"skipped,omitempty"`
}

type StaffService struct {
	staff    StaffRepository
	views    ViewCache
	notifier Notifier
	now      func() time.Time
}

func NewStaffService(staff StaffRepository, views ViewCache, notifier Notifier) *StaffService {
	return &StaffService{
		staff:    staff,
		views:    views,
		notifier: notifier,
		now:      time.Now,
	}
}

// MarkAttendance records a check-in or check-out for today.
func (s *StaffService) MarkAttendance(ctx context.Context, staffID, kind string) error {
	now := s.now()
	today := models.Today(now)

	existing, err := s.staff.Attendance(ctx, staffID, today)
	if err != nil && !errors.Is(err, status.ErrNotFound) {
		return err
	}

	switch kind {
	case models.AttendanceCheckIn:
		if existing != nil {
			return status.ErrAlreadyCheckedIn
		}
		err = s.staff.CheckIn(ctx, staffID, today, now)
		if errors.Is(err, status.ErrConflict) {
			err = fmt.Errorf("%w: %w", status.ErrAlreadyCheckedIn, err)
		}
	case models.AttendanceCheckOut:
		if existing == nil {
			return status.ErrNoCheckIn
		}
		err = s.staff.CheckOut(ctx, existing.ID, now)
	default:
		return fmt.Errorf("attendance type %q: %w", kind, status.ErrValidation)
	}

	monitoring.TrackAction(kind, err)
	if err != nil {
		slog.Error("attendance update failed", "staff", staffID, "type", kind, "error", err)
		return err
	}

	s.changed(ctx, kind, staffID)
	return nil
}

// Grid returns staff members newest first with today's attendance.
func (s *StaffService) Grid(ctx context.Context) ([]models.StaffRow, error) {
	today := s.now()
	return cached(ctx, s.views, dayKey(PathStaff, today), func() ([]models.StaffRow, error) {
		members, err := s.staff.Members(ctx)
		if err != nil {
			return nil, err
		}
		attendance, err := s.staff.AttendanceOn(ctx, models.Today(today))
		if err != nil {
			return nil, err
		}
		rows := make([]models.StaffRow, len(members))
		for i, m := range members {
			rows[i] = models.StaffRow{StaffMember: m}
			if a, ok := attendance[m.ID]; ok {
				rows[i].Today = &a
			}
		}
		return rows, nil
	})
}

func (s *StaffService) AddMember(ctx context.Context, m *models.StaffMember) error {
	if err := schema.StaffMember(m); err != nil {
		return err
	}
	err := s.staff.CreateMember(ctx, m)
	monitoring.TrackAction("create_staff", err)
	if err != nil {
		slog.Error("create staff member failed", "name", m.Name, "error", err)
		return err
	}
	s.changed(ctx, "create", m.ID)
	return nil
}

// Import adds every valid row of an uploaded staff spreadsheet. Invalid or
// duplicate rows are skipped and reported by name.
func (s *StaffService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	members, err := export.ReadStaff(r)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	for i := range members {
		m := &members[i]
		if err := schema.StaffMember(m); err != nil {
			result.Skipped = append(result.Skipped, m.Name)
			continue
		}
		if err := s.staff.CreateMember(ctx, m); err != nil {
			if errors.Is(err, status.ErrConflict) {
				result.Skipped = append(result.Skipped, m.Name)
				continue
			}
			monitoring.TrackAction("import_staff", err)
			return result, err
		}
		result.Imported++
	}
	monitoring.TrackAction("import_staff", nil)
	slog.Info("staff imported", "imported", result.Imported, "skipped", len(result.Skipped))

	if result.Imported > 0 {
		s.changed(ctx, "import", "")
	}
	return result, nil
}

func (s *StaffService) changed(ctx context.Context, action, id string) {
	revalidate(ctx, s.views, s.notifier, s.now(), notify.Update{
		Type:     notify.TypeAttendance,
		Action:   action,
		RecordID: id,
		Paths:    []string{PathStaff},
	})
}
