package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"institute-events/internal/export"
	"institute-events/internal/notify"
	"institute-events/internal/schema"
	"institute-events/internal/status"
	"institute-events/models"
	"institute-events/monitoring"
)

const (
	TabAll       = "all"
	TabPublished = "published"
	TabDraft     = "draft"
	TabCompleted = "completed"

	upcomingLimit = 5
)

// EventFilter narrows the dashboard events list. Zero numeric fields mean
// "any".
type EventFilter struct {
	Tab   string
	Year  int
	Month int
	Week  int // week of month, 1..5
}

// ParseEventFilter reads the filter, year, month and week query values.
// Unknown or "all" values leave that dimension unfiltered.
func ParseEventFilter(tab, year, month, week string) EventFilter {
	f := EventFilter{Tab: TabAll}
	switch tab {
	case TabPublished, TabDraft, TabCompleted:
		f.Tab = tab
	}
	if n, err := strconv.Atoi(year); err == nil && n > 0 {
		f.Year = n
	}
	if n, err := strconv.Atoi(month); err == nil && n >= 1 && n <= 12 {
		f.Month = n
	}
	if n, err := strconv.Atoi(week); err == nil && n >= 1 && n <= 5 {
		f.Week = n
	}
	return f
}

// WeekOfMonth maps days 1-7 to 1, 8-14 to 2 and so on up to 5.
func WeekOfMonth(day int) int {
	return (day-1)/7 + 1
}

func (f EventFilter) Match(e models.Event, today time.Time) bool {
	switch f.Tab {
	case TabPublished:
		if !e.IsPublished {
			return false
		}
	case TabDraft:
		if e.IsPublished {
			return false
		}
	case TabCompleted:
		if !e.IsCompleted(today) {
			return false
		}
	}
	if f.Year == 0 && f.Month == 0 && f.Week == 0 {
		return true
	}
	d := e.Date()
	if d.IsZero() {
		return false
	}
	if f.Year != 0 && d.Year() != f.Year {
		return false
	}
	if f.Month != 0 && int(d.Month()) != f.Month {
		return false
	}
	if f.Week != 0 && WeekOfMonth(d.Day()) != f.Week {
		return false
	}
	return true
}

type DashboardView struct {
	TotalEvents     int64          `json:"total_events"`
	PublishedEvents int64          `json:"published_events"`
	Upcoming        []models.Event `json:"upcoming"`
}

type CalendarEntry struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Start           string            `json:"start,omitempty"`
	End             string            `json:"end,omitempty"`
	BackgroundColor string            `json:"backgroundColor"`
	BorderColor     string            `json:"borderColor"`
	ExtendedProps   map[string]string `json:"extendedProps"`
	URL             string            `json:"url"`
}

type EventService struct {
	events   EventRepository
	views    ViewCache
	notifier Notifier
	now      func() time.Time
}

func NewEventService(events EventRepository, views ViewCache, notifier Notifier) *EventService {
	return &EventService{
		events:   events,
		views:    views,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *EventService) Create(ctx context.Context, userID string, form schema.EventForm) (string, error) {
	if userID == "" {
		return "", status.ErrUnauthorized
	}
	input, err := schema.ParseEvent(form)
	if err != nil {
		return "", err
	}

	id, err := s.events.Create(ctx, input, userID)
	monitoring.TrackAction("create_event", err)
	if err != nil {
		slog.Error("create event failed", "user", userID, "error", err)
		return "", err
	}

	slog.Info("event created", "id", id, "user", userID)
	s.changed(ctx, "create", id)
	return id, nil
}

func (s *EventService) Update(ctx context.Context, id string, form schema.EventForm) error {
	input, err := schema.ParseEvent(form)
	if err != nil {
		return err
	}

	err = s.events.Update(ctx, id, input)
	monitoring.TrackAction("update_event", err)
	if err != nil {
		slog.Error("update event failed", "id", id, "error", err)
		return err
	}

	s.changed(ctx, "update", id)
	return nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	err := s.events.Delete(ctx, id)
	monitoring.TrackAction("delete_event", err)
	if err != nil {
		slog.Error("delete event failed", "id", id, "error", err)
		return err
	}

	s.changed(ctx, "delete", id)
	return nil
}

// Changed invalidates the views of an event changed outside the service,
// such as through the record API.
func (s *EventService) Changed(ctx context.Context, action, id string) {
	s.changed(ctx, action, id)
}

func (s *EventService) changed(ctx context.Context, action, id string) {
	revalidate(ctx, s.views, s.notifier, s.now(), notify.Update{
		Type:     notify.TypeEventChanged,
		Action:   action,
		RecordID: id,
		EventID:  id,
		Paths:    EventPaths(id),
	})
}

// Get returns an event for the edit form.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.events.Get(ctx, id)
}

// All returns every event ordered by date.
func (s *EventService) All(ctx context.Context) ([]models.Event, error) {
	return cached(ctx, s.views, PathDashboardEvents, func() ([]models.Event, error) {
		return s.events.List(ctx)
	})
}

// List returns the events matching the filter, ordered by date.
func (s *EventService) List(ctx context.Context, f EventFilter) ([]models.Event, error) {
	events, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.Match(e, today) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *EventService) Dashboard(ctx context.Context) (DashboardView, error) {
	today := s.now()
	return cached(ctx, s.views, dayKey(PathDashboard, today), func() (DashboardView, error) {
		total, published, err := s.events.Counts(ctx)
		if err != nil {
			return DashboardView{}, err
		}
		upcoming, err := s.events.Upcoming(ctx, models.Today(today), upcomingLimit)
		if err != nil {
			return DashboardView{}, err
		}
		return DashboardView{
			TotalEvents:     total,
			PublishedEvents: published,
			Upcoming:        upcoming,
		}, nil
	})
}

// Calendar returns the calendar feed, colored by category.
func (s *EventService) Calendar(ctx context.Context) ([]CalendarEntry, error) {
	return cached(ctx, s.views, PathCalendar, func() ([]CalendarEntry, error) {
		events, err := s.events.List(ctx)
		if err != nil {
			return nil, err
		}
		colors := export.DefaultColors()
		entries := make([]CalendarEntry, len(events))
		for i, e := range events {
			color := colors.For(e.Category).Hex()
			entry := CalendarEntry{
				ID:              e.ID,
				Title:           e.Title,
				BackgroundColor: color,
				BorderColor:     color,
				ExtendedProps:   map[string]string{"category": e.Category},
				URL:             fmt.Sprintf("%s/edit/%s", PathDashboardEvents, e.ID),
			}
			if e.EventDate != "" {
				entry.Start = e.EventDate + "T" + e.StartTime
				entry.End = e.EventDate + "T" + e.EndTime
			}
			entries[i] = entry
		}
		return entries, nil
	})
}

// PublicList returns published events for the public site.
func (s *EventService) PublicList(ctx context.Context) ([]models.Event, error) {
	return cached(ctx, s.views, PathPublicEvents, func() ([]models.Event, error) {
		return s.events.ListPublished(ctx)
	})
}

// PublicGet returns a published event; drafts are reported as not found.
func (s *EventService) PublicGet(ctx context.Context, id string) (*models.Event, error) {
	return cached(ctx, s.views, PublicEventPath(id), func() (*models.Event, error) {
		e, err := s.events.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !e.IsPublished {
			return nil, fmt.Errorf("event %s is not published: %w", id, status.ErrNotFound)
		}
		return e, nil
	})
}
