package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"institute-events/internal/status"
	"institute-events/models"
)

var staffNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func setupTestStaffService() (*StaffService, *MockStaffRepository, *memViews) {
	repo := &MockStaffRepository{}
	views := newMemViews()
	service := NewStaffService(repo, views, &recordingNotifier{})
	service.now = func() time.Time { return staffNow }
	return service, repo, views
}

func TestStaffService_CheckIn(t *testing.T) {
	service, repo, views := setupTestStaffService()
	ctx := context.Background()

	repo.On("Attendance", ctx, "staff-1", "2025-03-14").Return(nil, status.ErrNotFound)
	repo.On("CheckIn", ctx, "staff-1", "2025-03-14", staffNow).Return(nil)

	require.NoError(t, service.MarkAttendance(ctx, "staff-1", models.AttendanceCheckIn))
	assert.Contains(t, views.invalidated, dayKey(PathStaff, staffNow))
	repo.AssertExpectations(t)
}

func TestStaffService_CheckIn_Twice(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("Attendance", ctx, "staff-1", "2025-03-14").Return(&models.StaffAttendance{ID: "att-1"}, nil)

	err := service.MarkAttendance(ctx, "staff-1", models.AttendanceCheckIn)

	assert.ErrorIs(t, err, status.ErrAlreadyCheckedIn)
	repo.AssertNotCalled(t, "CheckIn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStaffService_CheckOut(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("Attendance", ctx, "staff-1", "2025-03-14").Return(&models.StaffAttendance{ID: "att-1"}, nil)
	repo.On("CheckOut", ctx, "att-1", staffNow).Return(nil)

	require.NoError(t, service.MarkAttendance(ctx, "staff-1", models.AttendanceCheckOut))
	repo.AssertExpectations(t)
}

func TestStaffService_CheckOut_WithoutCheckIn(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("Attendance", ctx, "staff-1", "2025-03-14").Return(nil, status.ErrNotFound)

	err := service.MarkAttendance(ctx, "staff-1", models.AttendanceCheckOut)

	assert.ErrorIs(t, err, status.ErrNoCheckIn)
}

func TestStaffService_UnknownAttendanceType(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()
	repo.On("Attendance", ctx, "staff-1", "2025-03-14").Return(nil, status.ErrNotFound)

	err := service.MarkAttendance(ctx, "staff-1", "lunch")

	assert.ErrorIs(t, err, status.ErrValidation)
}

func TestStaffService_Grid(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("Members", ctx).Return([]models.StaffMember{{ID: "s2", Name: "Bina"}, {ID: "s1", Name: "Arun"}}, nil)
	repo.On("AttendanceOn", ctx, "2025-03-14").Return(map[string]models.StaffAttendance{
		"s1": {ID: "att-1", StaffID: "s1", Date: "2025-03-14"},
	}, nil)

	rows, err := service.Grid(ctx)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Nil(t, rows[0].Today)
	require.NotNil(t, rows[1].Today)
	assert.Equal(t, "att-1", rows[1].Today.ID)
}

func TestStaffService_Grid_TodayChanges(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("Members", ctx).Return([]models.StaffMember{{ID: "s1", Name: "Arun"}}, nil)
	repo.On("AttendanceOn", ctx, "2025-03-14").Return(map[string]models.StaffAttendance{
		"s1": {ID: "att-1", StaffID: "s1", Date: "2025-03-14"},
	}, nil).Once()
	repo.On("AttendanceOn", ctx, "2025-03-15").Return(map[string]models.StaffAttendance{}, nil).Once()

	rows, err := service.Grid(ctx)
	require.NoError(t, err)
	require.NotNil(t, rows[0].Today)

	service.now = func() time.Time { return staffNow.Add(24 * time.Hour) }
	rows, err = service.Grid(ctx)
	require.NoError(t, err)
	assert.Nil(t, rows[0].Today)
	repo.AssertExpectations(t)
}

func TestStaffService_AddMember(t *testing.T) {
	service, repo, _ := setupTestStaffService()
	ctx := context.Background()

	repo.On("CreateMember", ctx, mock.MatchedBy(func(m *models.StaffMember) bool {
		return m.Name == "Arun" && m.Role == models.RoleStaff
	})).Return(nil)

	require.NoError(t, service.AddMember(ctx, &models.StaffMember{Name: "  Arun "}))

	err := service.AddMember(ctx, &models.StaffMember{Email: "arun@example.com"})
	assert.ErrorIs(t, err, status.ErrValidation)
	repo.AssertNumberOfCalls(t, "CreateMember", 1)
}

func TestStaffService_Import(t *testing.T) {
	service, repo, views := setupTestStaffService()
	ctx := context.Background()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Email", "Role"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Arun", "arun@example.com", ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Chandra", "not-an-email", "staff"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"Bina", "bina@example.com", "institute_admin"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	repo.On("CreateMember", ctx, mock.Anything).Return(nil)

	result, err := service.Import(ctx, buf)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, []string{"Chandra"}, result.Skipped)
	assert.Contains(t, views.invalidated, dayKey(PathStaff, staffNow))
}
