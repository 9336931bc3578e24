package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-events/internal/schema"
	"institute-events/internal/status"
	_ "institute-events/migrations"
	"institute-events/models"
)

const testUserID = "4q1xlclmfloku33"

func newTestApp(t *testing.T) *tests.TestApp {
	t.Helper()
	app, err := tests.NewTestApp()
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)
	return app
}

func eventInput(title, date string, published bool) models.EventInput {
	return models.EventInput{
		Title:       title,
		EventDate:   date,
		StartTime:   "10:00",
		EndTime:     "12:00",
		Venue:       "Main Hall",
		Category:    "Exhibitions",
		Organizer:   "Arts Club",
		IsPublished: published,
	}
}

func TestEventStore_AgendaRoundTrip(t *testing.T) {
	app := newTestApp(t)
	events := NewEventStore(app)
	ctx := context.Background()

	in := eventInput("Spring Exhibition", "2025-03-14", true)
	in.Agenda = []models.AgendaItem{
		{Time: "10:00", Activity: "Opening"},
		{Time: "11:30", Activity: "Guided tour"},
	}
	id, err := events.Create(ctx, in, testUserID)
	require.NoError(t, err)

	got, err := events.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, in.Agenda, got.Agenda)
	assert.Equal(t, "Spring Exhibition", got.Title)
	assert.Equal(t, testUserID, got.CreatedBy)
	assert.True(t, got.IsPublished)

	bare, err := events.Create(ctx, eventInput("No Agenda", "2025-03-15", false), testUserID)
	require.NoError(t, err)
	got, err = events.Get(ctx, bare)
	require.NoError(t, err)
	assert.NotNil(t, got.Agenda)
	assert.Empty(t, got.Agenda)
}

func TestEventStore_Upcoming(t *testing.T) {
	app := newTestApp(t)
	events := NewEventStore(app)
	ctx := context.Background()

	for _, e := range []models.EventInput{
		eventInput("Later Event", "2025-03-20", true),
		eventInput("Past Event", "2025-03-10", true),
		eventInput("Today Event", "2025-03-14", false),
	} {
		_, err := events.Create(ctx, e, testUserID)
		require.NoError(t, err)
	}

	upcoming, err := events.Upcoming(ctx, "2025-03-14", 10)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Today Event", upcoming[0].Title)
	assert.Equal(t, "Later Event", upcoming[1].Title)

	limited, err := events.Upcoming(ctx, "2025-03-14", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "Today Event", limited[0].Title)

	total, published, err := events.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), published)
}

func TestEventStore_LongTitle(t *testing.T) {
	app := newTestApp(t)
	events := NewEventStore(app)

	_, err := events.Create(context.Background(), eventInput(strings.Repeat("a", 301), "2025-03-14", true), testUserID)
	require.Error(t, err)
	assert.ErrorIs(t, err, status.ErrValidation)

	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Fields, "title")
}

func TestEventStore_NotFound(t *testing.T) {
	app := newTestApp(t)
	events := NewEventStore(app)

	_, err := events.Get(context.Background(), "missing00000000")
	assert.ErrorIs(t, err, status.ErrNotFound)
}

func TestTicketStore_DuplicateBooking(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	eventID, err := NewEventStore(app).Create(ctx, eventInput("Film Night", "2025-03-14", true), testUserID)
	require.NoError(t, err)

	tickets := NewTicketStore(app)
	first := &models.Ticket{EventID: eventID, UserID: testUserID, TicketCode: "TCK-000001-1", Status: models.TicketConfirmed}
	require.NoError(t, tickets.Create(ctx, first))
	assert.NotEmpty(t, first.ID)

	again := &models.Ticket{EventID: eventID, UserID: testUserID, TicketCode: "TCK-000002-2", Status: models.TicketConfirmed}
	err = tickets.Create(ctx, again)
	assert.ErrorIs(t, err, status.ErrConflict)

	found, err := tickets.FindByEventAndUser(ctx, eventID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestStaffStore_DuplicateCheckIn(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	staff := NewStaffStore(app)

	member := &models.StaffMember{Name: "Asha Rao", Email: "asha@example.com", Role: "Coordinator"}
	require.NoError(t, staff.CreateMember(ctx, member))

	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	require.NoError(t, staff.CheckIn(ctx, member.ID, "2025-03-14", at))

	err := staff.CheckIn(ctx, member.ID, "2025-03-14", at.Add(time.Hour))
	assert.ErrorIs(t, err, status.ErrConflict)

	// a new day gets its own row
	require.NoError(t, staff.CheckIn(ctx, member.ID, "2025-03-15", at.Add(24*time.Hour)))

	rows, err := staff.AttendanceOn(ctx, "2025-03-14")
	require.NoError(t, err)
	require.Contains(t, rows, member.ID)
	assert.Equal(t, "2025-03-14", rows[member.ID].Date)
}

func TestAuthStore_Register_ShortPassword(t *testing.T) {
	app := newTestApp(t)

	_, _, err := NewAuthStore(app).Register(context.Background(), "new.user@example.com", "short", "New User")
	assert.ErrorIs(t, err, status.ErrValidation)

	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Fields, "password")
}

func TestCollectionRules(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	viewer, err := app.FindAuthRecordByEmail(CollectionUsers, "test@example.com")
	require.NoError(t, err)
	other, err := app.FindAuthRecordByEmail(CollectionUsers, "test2@example.com")
	require.NoError(t, err)

	events := NewEventStore(app)
	publishedID, err := events.Create(ctx, eventInput("Open Day", "2025-03-14", true), testUserID)
	require.NoError(t, err)
	draftID, err := events.Create(ctx, eventInput("Draft Day", "2025-03-15", false), testUserID)
	require.NoError(t, err)

	published, err := app.FindRecordById(CollectionEvents, publishedID)
	require.NoError(t, err)
	draft, err := app.FindRecordById(CollectionEvents, draftID)
	require.NoError(t, err)
	collection := published.Collection()

	asViewer := &core.RequestInfo{Auth: viewer}
	anonymous := &core.RequestInfo{}

	t.Run("events are read-only outside superusers", func(t *testing.T) {
		for name, rule := range map[string]*string{
			"create": collection.CreateRule,
			"update": collection.UpdateRule,
			"delete": collection.DeleteRule,
		} {
			ok, err := app.CanAccessRecord(published, asViewer, rule)
			require.NoError(t, err, name)
			assert.False(t, ok, name)
		}
	})

	t.Run("only published events are visible", func(t *testing.T) {
		ok, err := app.CanAccessRecord(published, anonymous, collection.ViewRule)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = app.CanAccessRecord(draft, asViewer, collection.ViewRule)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("tickets are visible to their holder", func(t *testing.T) {
		ticket := &models.Ticket{EventID: publishedID, UserID: viewer.Id, TicketCode: "TCK-000003-3", Status: models.TicketConfirmed}
		require.NoError(t, NewTicketStore(app).Create(ctx, ticket))

		record, err := app.FindRecordById(CollectionTickets, ticket.ID)
		require.NoError(t, err)
		rule := record.Collection().ViewRule

		ok, err := app.CanAccessRecord(record, asViewer, rule)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = app.CanAccessRecord(record, &core.RequestInfo{Auth: other}, rule)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
