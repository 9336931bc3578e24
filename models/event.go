package models

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar-date format stored in the events collection.
const DateLayout = "2006-01-02"

const (
	CategoryTheatre     = "Theatre Plays"
	CategoryDanceMusic  = "Dance & Music Events"
	CategoryTalks       = "Talks & Seminars"
	CategoryExhibitions = "Exhibitions"
	CategoryWorkshops   = "Master class / Workshops"
	CategoryFilm        = "Film Festival"
	CategoryOther       = "Other"
)

// Categories is the closed set of event categories, in display order.
var Categories = []string{
	CategoryTheatre,
	CategoryDanceMusic,
	CategoryTalks,
	CategoryExhibitions,
	CategoryWorkshops,
	CategoryFilm,
	CategoryOther,
}

var ErrInvalidDate = errors.New("invalid date")

var eventDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

type AgendaItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	EventDate   string       `json:"event_date"` // YYYY-MM-DD
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Venue       string       `json:"venue"`
	Category    string       `json:"category"`
	Organizer   string       `json:"organizer"`
	PosterURL   string       `json:"poster_url,omitempty"`
	IsPublished bool         `json:"is_published"`
	Agenda      []AgendaItem `json:"agenda"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
}

// EventInput is the validated, normalized payload of an event form.
type EventInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	EventDate   string       `json:"event_date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Venue       string       `json:"venue"`
	Category    string       `json:"category"`
	Organizer   string       `json:"organizer"`
	PosterURL   string       `json:"poster_url"`
	IsPublished bool         `json:"is_published"`
	Agenda      []AgendaItem `json:"agenda"`
}

// ParseEventDate accepts a plain calendar date or a timestamp and returns the
// calendar day it falls on (UTC).
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// Date returns the event day, or the zero time when event_date is malformed.
func (e *Event) Date() time.Time {
	t, err := ParseEventDate(e.EventDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsCompleted reports whether the event day is strictly before today.
func (e *Event) IsCompleted(today time.Time) bool {
	d := e.Date()
	if d.IsZero() {
		return false
	}
	return d.Before(StartOfDay(today))
}

func (e *Event) StatusLabel() string {
	if e.IsPublished {
		return "Published"
	}
	return "Draft"
}

// ShortTime trims seconds from an HH:MM:SS time of day.
func ShortTime(s string) string {
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today formats the given instant as an event_date value.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
