package services

import (
	"context"
	"time"

	"institute-events/internal/notify"
	"institute-events/models"
)

type EventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	ListPublished(ctx context.Context) ([]models.Event, error)
	Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error)
	Counts(ctx context.Context) (total, published int64, err error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, in models.EventInput, createdBy string) (string, error)
	Update(ctx context.Context, id string, in models.EventInput) error
	Delete(ctx context.Context, id string) error
}

type TicketRepository interface {
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	UpdateStatus(ctx context.Context, id, status string) (*models.Ticket, error)
	List(ctx context.Context) ([]models.TicketRow, error)
}

type StaffRepository interface {
	Members(ctx context.Context) ([]models.StaffMember, error)
	Member(ctx context.Context, id string) (*models.StaffMember, error)
	CreateMember(ctx context.Context, m *models.StaffMember) error
	Attendance(ctx context.Context, staffID, date string) (*models.StaffAttendance, error)
	AttendanceOn(ctx context.Context, date string) (map[string]models.StaffAttendance, error)
	CheckIn(ctx context.Context, staffID, date string, at time.Time) error
	CheckOut(ctx context.Context, attendanceID string, at time.Time) error
}

type ProfileRepository interface {
	List(ctx context.Context) ([]models.Profile, error)
	Get(ctx context.Context, id string) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) error
	UpdateRole(ctx context.Context, id, role string) error
}

type AuthRepository interface {
	Login(ctx context.Context, email, password string) (userID, token string, err error)
	Register(ctx context.Context, email, password, name string) (userID, token string, err error)
	DeleteUser(ctx context.Context, id string) error
}

// ViewCache holds rendered view models keyed by page path.
type ViewCache interface {
	Get(ctx context.Context, path string, dst any) bool
	Set(ctx context.Context, path string, view any) error
	Invalidate(ctx context.Context, paths ...string) error
}

type Notifier = notify.Notifier
