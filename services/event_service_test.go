package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"institute-events/internal/notify"
	"institute-events/internal/schema"
	"institute-events/internal/status"
	"institute-events/models"
)

func setupTestEventService() (*EventService, *MockEventRepository, *memViews, *recordingNotifier) {
	repo := &MockEventRepository{}
	views := newMemViews()
	notifier := &recordingNotifier{}
	service := NewEventService(repo, views, notifier)
	service.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return service, repo, views, notifier
}

func validForm() schema.EventForm {
	return schema.EventForm{
		Title:       "Evening Raga",
		EventDate:   "2025-03-20",
		StartTime:   "18:30",
		EndTime:     "20:00",
		Venue:       "Main Hall",
		Category:    models.CategoryDanceMusic,
		Organizer:   "Music Circle",
		IsPublished: "on",
		Agenda:      `[{"time":"18:30","activity":"Welcome"}]`,
	}
}

func sampleEvents() []models.Event {
	return []models.Event{
		{ID: "past", Title: "Past talk", EventDate: "2025-02-03", Category: models.CategoryTalks, IsPublished: true},
		{ID: "draft", Title: "Draft play", EventDate: "2025-03-10", Category: models.CategoryTheatre},
		{ID: "soon", Title: "Soon", EventDate: "2025-03-29", StartTime: "18:00", EndTime: "19:00", Category: models.CategoryOther, IsPublished: true},
	}
}

func TestEventService_Create_Success(t *testing.T) {
	service, repo, views, notifier := setupTestEventService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(in models.EventInput) bool {
		return in.Title == "Evening Raga" && in.IsPublished && len(in.Agenda) == 1
	}), "user-1").Return("evt-1", nil)

	id, err := service.Create(ctx, "user-1", validForm())

	require.NoError(t, err)
	assert.Equal(t, "evt-1", id)
	assert.Subset(t, views.invalidated, []string{"/dashboard@2025-03-14", PathDashboardEvents, PathCalendar, PathTickets, PathPublicEvents, "/dashboard/events/evt-1"})
	require.Len(t, notifier.updates, 1)
	assert.Equal(t, notify.TypeEventChanged, notifier.updates[0].Type)
	assert.Equal(t, "create", notifier.updates[0].Action)
	repo.AssertExpectations(t)
}

func TestEventService_Create_RequiresUser(t *testing.T) {
	service, repo, _, _ := setupTestEventService()

	_, err := service.Create(context.Background(), "", validForm())

	assert.ErrorIs(t, err, status.ErrUnauthorized)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_Create_InvalidForm(t *testing.T) {
	service, repo, views, _ := setupTestEventService()
	form := validForm()
	form.Title = "ab"

	_, err := service.Create(context.Background(), "user-1", form)

	assert.ErrorIs(t, err, status.ErrValidation)
	assert.Empty(t, views.invalidated)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_UpdateAndDelete_Invalidate(t *testing.T) {
	service, repo, views, notifier := setupTestEventService()
	ctx := context.Background()

	repo.On("Update", ctx, "evt-1", mock.Anything).Return(nil)
	repo.On("Delete", ctx, "evt-1").Return(nil)

	require.NoError(t, service.Update(ctx, "evt-1", validForm()))
	require.NoError(t, service.Delete(ctx, "evt-1"))

	assert.Contains(t, views.invalidated, "/events/evt-1")
	require.Len(t, notifier.updates, 2)
	assert.Equal(t, "delete", notifier.updates[1].Action)
}

func TestEventService_Delete_Failure_KeepsViews(t *testing.T) {
	service, repo, views, notifier := setupTestEventService()
	ctx := context.Background()
	repo.On("Delete", ctx, "missing").Return(status.ErrNotFound)

	err := service.Delete(ctx, "missing")

	assert.ErrorIs(t, err, status.ErrNotFound)
	assert.Empty(t, views.invalidated)
	assert.Empty(t, notifier.updates)
}

func TestEventService_List_Filters(t *testing.T) {
	service, repo, _, _ := setupTestEventService()
	ctx := context.Background()
	repo.On("List", ctx).Return(sampleEvents(), nil).Once()

	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{"all", EventFilter{Tab: TabAll}, []string{"past", "draft", "soon"}},
		{"published", EventFilter{Tab: TabPublished}, []string{"past", "soon"}},
		{"draft", EventFilter{Tab: TabDraft}, []string{"draft"}},
		{"completed", EventFilter{Tab: TabCompleted}, []string{"past", "draft"}},
		{"month", EventFilter{Tab: TabAll, Year: 2025, Month: 3}, []string{"draft", "soon"}},
		{"week", EventFilter{Tab: TabAll, Month: 3, Week: 5}, []string{"soon"}},
		{"other year", EventFilter{Tab: TabAll, Year: 2024}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := service.List(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]string, 0, len(events))
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
	// the full list is rendered once and served from the view cache after
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestParseEventFilter(t *testing.T) {
	assert.Equal(t, EventFilter{Tab: TabAll}, ParseEventFilter("", "all", "all", "all"))
	assert.Equal(t, EventFilter{Tab: TabCompleted, Year: 2025, Month: 3, Week: 2}, ParseEventFilter("completed", "2025", "3", "2"))
	assert.Equal(t, EventFilter{Tab: TabAll}, ParseEventFilter("bogus", "-1", "13", "6"))
}

func TestWeekOfMonth(t *testing.T) {
	for day, want := range map[int]int{1: 1, 7: 1, 8: 2, 14: 2, 15: 3, 22: 4, 28: 4, 29: 5, 31: 5} {
		assert.Equal(t, want, WeekOfMonth(day), "day %d", day)
	}
}

func TestEventService_Dashboard_Cached(t *testing.T) {
	service, repo, views, _ := setupTestEventService()
	ctx := context.Background()
	upcoming := []models.Event{sampleEvents()[2]}

	repo.On("Counts", ctx).Return(int64(3), int64(2), nil).Once()
	repo.On("Upcoming", ctx, "2025-03-14", 5).Return(upcoming, nil).Once()

	first, err := service.Dashboard(ctx)
	require.NoError(t, err)
	second, err := service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), first.TotalEvents)
	assert.Equal(t, int64(2), first.PublishedEvents)
	assert.Equal(t, first, second)
	repo.AssertExpectations(t)

	require.NoError(t, views.Invalidate(ctx, dayKey(PathDashboard, service.now())))
	repo.On("Counts", ctx).Return(int64(4), int64(2), nil).Once()
	repo.On("Upcoming", ctx, "2025-03-14", 5).Return(upcoming, nil).Once()

	third, err := service.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), third.TotalEvents)
}

func TestEventService_Dashboard_RendersAgainNextDay(t *testing.T) {
	service, repo, _, _ := setupTestEventService()
	ctx := context.Background()

	repo.On("Counts", ctx).Return(int64(3), int64(2), nil).Twice()
	repo.On("Upcoming", ctx, "2025-03-14", 5).Return([]models.Event{sampleEvents()[2]}, nil).Once()
	repo.On("Upcoming", ctx, "2025-03-15", 5).Return([]models.Event{}, nil).Once()

	_, err := service.Dashboard(ctx)
	require.NoError(t, err)

	service.now = func() time.Time { return time.Date(2025, 3, 15, 0, 5, 0, 0, time.UTC) }
	next, err := service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Empty(t, next.Upcoming)
	repo.AssertExpectations(t)
}

func TestEventService_Calendar(t *testing.T) {
	service, repo, _, _ := setupTestEventService()
	ctx := context.Background()
	repo.On("List", ctx).Return(sampleEvents(), nil)

	entries, err := service.Calendar(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 3)
	soon := entries[2]
	assert.Equal(t, "2025-03-29T18:00", soon.Start)
	assert.Equal(t, "2025-03-29T19:00", soon.End)
	assert.Equal(t, "/dashboard/events/edit/soon", soon.URL)
	assert.Equal(t, models.CategoryOther, soon.ExtendedProps["category"])
	assert.Equal(t, soon.BackgroundColor, soon.BorderColor)
	assert.Equal(t, "#ffcc99", entries[1].BackgroundColor)
}

func TestEventService_PublicGet(t *testing.T) {
	service, repo, _, _ := setupTestEventService()
	ctx := context.Background()
	events := sampleEvents()
	repo.On("Get", ctx, "soon").Return(&events[2], nil)
	repo.On("Get", ctx, "draft").Return(&events[1], nil)
	repo.On("Get", ctx, "gone").Return(nil, status.ErrNotFound)

	e, err := service.PublicGet(ctx, "soon")
	require.NoError(t, err)
	assert.Equal(t, "Soon", e.Title)

	_, err = service.PublicGet(ctx, "draft")
	assert.ErrorIs(t, err, status.ErrNotFound)

	_, err = service.PublicGet(ctx, "gone")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestEventPaths(t *testing.T) {
	paths := EventPaths("evt-1")
	assert.Contains(t, paths, PathTickets)
	assert.Contains(t, paths, "/events/evt-1")
	assert.Contains(t, paths, "/dashboard/events/evt-1")
	assert.NotContains(t, EventPaths(""), "/events/")

	day := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t,
		[]string{"/dashboard@2025-03-14", PathTickets, "/dashboard/staff@2025-03-14"},
		cacheKeys([]string{PathDashboard, PathTickets, PathStaff}, day),
	)
}
