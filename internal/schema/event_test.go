package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-events/internal/status"
	"institute-events/models"
)

func validForm() EventForm {
	return EventForm{
		Title:       "Annual Concert",
		Description: "An evening of music",
		EventDate:   "2025-03-14",
		StartTime:   "18:00",
		EndTime:     "20:30:00",
		Venue:       "Main Hall",
		Category:    models.CategoryDanceMusic,
		Organizer:   "Music Society",
		IsPublished: "on",
		Agenda:      `[{"time":"18:00","activity":"Welcome"},{"time":"18:30","activity":"Performance"}]`,
	}
}

func TestParseEvent_Valid(t *testing.T) {
	input, err := ParseEvent(validForm())
	require.NoError(t, err)

	assert.Equal(t, "Annual Concert", input.Title)
	assert.Equal(t, "2025-03-14", input.EventDate)
	assert.True(t, input.IsPublished)
	assert.Equal(t, []models.AgendaItem{
		{Time: "18:00", Activity: "Welcome"},
		{Time: "18:30", Activity: "Performance"},
	}, input.Agenda)
}

func TestParseEvent_NormalizesTimestampDate(t *testing.T) {
	form := validForm()
	form.EventDate = "2025-03-14T10:00:00Z"

	input, err := ParseEvent(form)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", input.EventDate)
}

func TestParseEvent_UncheckedIsDraft(t *testing.T) {
	form := validForm()
	form.IsPublished = ""

	input, err := ParseEvent(form)
	require.NoError(t, err)
	assert.False(t, input.IsPublished)
}

func TestParseEvent_EmptyAgenda(t *testing.T) {
	form := validForm()
	form.Agenda = ""

	input, err := ParseEvent(form)
	require.NoError(t, err)
	assert.NotNil(t, input.Agenda)
	assert.Empty(t, input.Agenda)
}

func TestParseEvent_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EventForm)
		field  string
	}{
		{"short title", func(f *EventForm) { f.Title = "ab" }, "title"},
		{"blank venue", func(f *EventForm) { f.Venue = "  " }, "venue"},
		{"short organizer", func(f *EventForm) { f.Organizer = "x" }, "organizer"},
		{"long title", func(f *EventForm) { f.Title = strings.Repeat("t", MaxTextLength+10) }, "title"},
		{"long venue", func(f *EventForm) { f.Venue = strings.Repeat("v", MaxTextLength+1) }, "venue"},
		{"bad date", func(f *EventForm) { f.EventDate = "someday" }, "event_date"},
		{"unknown category", func(f *EventForm) { f.Category = "Sports" }, "category"},
		{"bad time", func(f *EventForm) { f.StartTime = "25:00" }, "start_time"},
		{"bad poster url", func(f *EventForm) { f.PosterURL = "not a url" }, "poster_url"},
		{"agenda not json", func(f *EventForm) { f.Agenda = "{oops" }, "agenda"},
		{"agenda missing activity", func(f *EventForm) { f.Agenda = `[{"time":"18:00","activity":""}]` }, "agenda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			_, err := ParseEvent(form)
			require.Error(t, err)
			assert.ErrorIs(t, err, status.ErrValidation)

			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestError_Messages(t *testing.T) {
	form := validForm()
	form.Title = "ab"
	form.Agenda = `[{"time":"","activity":"Welcome"}]`

	_, err := ParseEvent(form)
	var verr *Error
	require.ErrorAs(t, err, &verr)

	msgs := verr.Messages()
	assert.Equal(t, "Title must be at least 3 characters", msgs["title"])
	agenda, ok := msgs["agenda"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, agenda, "0")
}
