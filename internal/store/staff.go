package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"institute-events/models"
)

type StaffStore struct {
	app core.App
}

func NewStaffStore(app core.App) *StaffStore {
	return &StaffStore{app: app}
}

// Members returns staff members newest first.
func (s *StaffStore) Members(ctx context.Context) ([]models.StaffMember, error) {
	records, err := s.app.FindRecordsByFilter(CollectionStaffMembers, "", "-created", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	members := make([]models.StaffMember, len(records))
	for i, r := range records {
		members[i] = toStaffMember(r)
	}
	return members, nil
}

func (s *StaffStore) Member(ctx context.Context, id string) (*models.StaffMember, error) {
	record, err := s.app.FindRecordById(CollectionStaffMembers, id)
	if err != nil {
		return nil, notFound(err, "staff member "+id)
	}
	m := toStaffMember(record)
	return &m, nil
}

func (s *StaffStore) CreateMember(ctx context.Context, m *models.StaffMember) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionStaffMembers)
	if err != nil {
		return fmt.Errorf("find staff collection: %w", err)
	}
	record := core.NewRecord(collection)
	record.Set("name", m.Name)
	record.Set("email", m.Email)
	record.Set("phone", m.Phone)
	record.Set("role", m.Role)
	record.Set("personal_details", m.PersonalDetails)
	record.Set("joining_date", m.JoiningDate)

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "staff member")
	}
	m.ID = record.Id
	m.CreatedAt = record.GetDateTime("created").Time()
	return nil
}

// Attendance returns the attendance row of a staff member for a date.
func (s *StaffStore) Attendance(ctx context.Context, staffID, date string) (*models.StaffAttendance, error) {
	record, err := s.app.FindFirstRecordByFilter(
		CollectionStaffAttendance,
		"staff_id = {:staff} && date = {:date}",
		dbx.Params{"staff": staffID, "date": date},
	)
	if err != nil {
		return nil, notFound(err, "attendance")
	}
	a := toAttendance(record)
	return &a, nil
}

// AttendanceOn returns every attendance row for a date keyed by staff id.
func (s *StaffStore) AttendanceOn(ctx context.Context, date string) (map[string]models.StaffAttendance, error) {
	records, err := s.app.FindRecordsByFilter(
		CollectionStaffAttendance,
		"date = {:date}",
		"",
		0,
		0,
		dbx.Params{"date": date},
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	out := make(map[string]models.StaffAttendance, len(records))
	for _, r := range records {
		a := toAttendance(r)
		out[a.StaffID] = a
	}
	return out, nil
}

func (s *StaffStore) CheckIn(ctx context.Context, staffID, date string, at time.Time) error {
	collection, err := s.app.FindCollectionByNameOrId(CollectionStaffAttendance)
	if err != nil {
		return fmt.Errorf("find attendance collection: %w", err)
	}
	record := core.NewRecord(collection)
	record.Set("staff_id", staffID)
	record.Set("date", date)
	record.Set("check_in_time", at.UTC())

	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "attendance")
	}
	return nil
}

func (s *StaffStore) CheckOut(ctx context.Context, attendanceID string, at time.Time) error {
	record, err := s.app.FindRecordById(CollectionStaffAttendance, attendanceID)
	if err != nil {
		return notFound(err, "attendance "+attendanceID)
	}
	record.Set("check_out_time", at.UTC())
	if err := s.app.SaveWithContext(ctx, record); err != nil {
		return saveErr(err, "attendance")
	}
	return nil
}

func toStaffMember(r *core.Record) models.StaffMember {
	return models.StaffMember{
		ID:              r.Id,
		Name:            r.GetString("name"),
		Email:           r.GetString("email"),
		Phone:           r.GetString("phone"),
		Role:            r.GetString("role"),
		PersonalDetails: r.GetString("personal_details"),
		JoiningDate:     r.GetString("joining_date"),
		CreatedAt:       r.GetDateTime("created").Time(),
	}
}

func toAttendance(r *core.Record) models.StaffAttendance {
	a := models.StaffAttendance{
		ID:      r.Id,
		StaffID: r.GetString("staff_id"),
		Date:    r.GetString("date"),
	}
	if t := r.GetDateTime("check_in_time"); !t.IsZero() {
		v := t.Time()
		a.CheckInTime = &v
	}
	if t := r.GetDateTime("check_out_time"); !t.IsZero() {
		v := t.Time()
		a.CheckOutTime = &v
	}
	return a
}
