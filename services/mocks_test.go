package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"institute-events/internal/notify"
	"institute-events/models"
)

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) List(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func (m *MockEventRepository) ListPublished(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func (m *MockEventRepository) Upcoming(ctx context.Context, today string, limit int) ([]models.Event, error) {
	args := m.Called(ctx, today, limit)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func (m *MockEventRepository) Counts(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.Event)
	return e, args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, in models.EventInput, createdBy string) (string, error) {
	args := m.Called(ctx, in, createdBy)
	return args.String(0), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id string, in models.EventInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByEventAndUser(ctx context.Context, eventID, userID string) (*models.Ticket, error) {
	args := m.Called(ctx, eventID, userID)
	t, _ := args.Get(0).(*models.Ticket)
	return t, args.Error(1)
}

func (m *MockTicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id, status string) (*models.Ticket, error) {
	args := m.Called(ctx, id, status)
	t, _ := args.Get(0).(*models.Ticket)
	return t, args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context) ([]models.TicketRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]models.TicketRow)
	return rows, args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Members(ctx context.Context) ([]models.StaffMember, error) {
	args := m.Called(ctx)
	members, _ := args.Get(0).([]models.StaffMember)
	return members, args.Error(1)
}

func (m *MockStaffRepository) Member(ctx context.Context, id string) (*models.StaffMember, error) {
	args := m.Called(ctx, id)
	sm, _ := args.Get(0).(*models.StaffMember)
	return sm, args.Error(1)
}

func (m *MockStaffRepository) CreateMember(ctx context.Context, sm *models.StaffMember) error {
	args := m.Called(ctx, sm)
	return args.Error(0)
}

func (m *MockStaffRepository) Attendance(ctx context.Context, staffID, date string) (*models.StaffAttendance, error) {
	args := m.Called(ctx, staffID, date)
	a, _ := args.Get(0).(*models.StaffAttendance)
	return a, args.Error(1)
}

func (m *MockStaffRepository) AttendanceOn(ctx context.Context, date string) (map[string]models.StaffAttendance, error) {
	args := m.Called(ctx, date)
	out, _ := args.Get(0).(map[string]models.StaffAttendance)
	return out, args.Error(1)
}

func (m *MockStaffRepository) CheckIn(ctx context.Context, staffID, date string, at time.Time) error {
	args := m.Called(ctx, staffID, date, at)
	return args.Error(0)
}

func (m *MockStaffRepository) CheckOut(ctx context.Context, attendanceID string, at time.Time) error {
	args := m.Called(ctx, attendanceID, at)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	args := m.Called(ctx)
	profiles, _ := args.Get(0).([]models.Profile)
	return profiles, args.Error(1)
}

func (m *MockProfileRepository) Get(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateRole(ctx context.Context, id, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Login(ctx context.Context, email, password string) (string, string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthRepository) Register(ctx context.Context, email, password, name string) (string, string, error) {
	args := m.Called(ctx, email, password, name)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthRepository) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingNotifier keeps every update it is given.
type recordingNotifier struct {
	mu      sync.Mutex
	updates []notify.Update
}

func (n *recordingNotifier) Notify(ctx context.Context, u notify.Update) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, u)
	return nil
}

// memViews is an in-memory ViewCache that records invalidated paths.
type memViews struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newMemViews() *memViews {
	return &memViews{entries: make(map[string][]byte)}
}

func (v *memViews) Get(ctx context.Context, path string, dst any) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	raw, ok := v.entries[path]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (v *memViews) Set(ctx context.Context, path string, view any) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.entries[path] = raw
	v.mu.Unlock()
	return nil
}

func (v *memViews) Invalidate(ctx context.Context, paths ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, p := range paths {
		delete(v.entries, p)
		v.invalidated = append(v.invalidated, p)
	}
	return nil
}

// memKV is an in-memory kv.Store.
type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (s *memKV) Get(ctx context.Context, userID, name string, dst any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[userID+":"+name]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (s *memKV) Set(ctx context.Context, userID, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[userID+":"+name] = raw
	s.mu.Unlock()
	return nil
}

func (s *memKV) Clear(ctx context.Context, userID, name string) error {
	s.mu.Lock()
	delete(s.data, userID+":"+name)
	s.mu.Unlock()
	return nil
}
