package services

import (
	"context"
	"log/slog"
	"time"

	"institute-events/internal/notify"
	"institute-events/models"
	"institute-events/monitoring"
)

// Page paths whose cached views are dropped after a write.
const (
	PathDashboard       = "/dashboard"
	PathDashboardEvents = "/dashboard/events"
	PathCalendar        = "/dashboard/calendar"
	PathTickets         = "/dashboard/tickets"
	PathStaff           = "/dashboard/staff"
	PathPublicEvents    = "/events"
)

func DashboardEventPath(id string) string {
	return PathDashboardEvents + "/" + id
}

func PublicEventPath(id string) string {
	return PathPublicEvents + "/" + id
}

// EventPaths lists every view an event write affects. The tickets grid shows
// event titles.
func EventPaths(id string) []string {
	paths := []string{PathDashboard, PathDashboardEvents, PathCalendar, PathTickets, PathPublicEvents}
	if id != "" {
		paths = append(paths, DashboardEventPath(id), PublicEventPath(id))
	}
	return paths
}

// dailyViews are rendered from the current date and cached per day.
var dailyViews = map[string]bool{PathDashboard: true, PathStaff: true}

// dayKey is the cache key of a daily view on the given day.
func dayKey(path string, day time.Time) string {
	return path + "@" + models.Today(day)
}

// cacheKeys expands page paths into the cache keys holding their views.
func cacheKeys(paths []string, today time.Time) []string {
	keys := make([]string, 0, len(paths))
	for _, p := range paths {
		if dailyViews[p] {
			p = dayKey(p, today)
		}
		keys = append(keys, p)
	}
	return keys
}

// revalidate drops cached views and tells connected dashboards. Failures are
// logged; the write has already succeeded.
func revalidate(ctx context.Context, views ViewCache, notifier Notifier, today time.Time, u notify.Update) {
	if views != nil {
		if err := views.Invalidate(ctx, cacheKeys(u.Paths, today)...); err != nil {
			slog.Warn("view invalidation failed", "paths", u.Paths, "error", err)
		}
	}
	if notifier != nil {
		if err := notifier.Notify(ctx, u); err != nil {
			slog.Warn("dashboard notify failed", "type", u.Type, "error", err)
		}
	}
}

// cached serves a view from the cache or renders and stores it.
func cached[T any](ctx context.Context, views ViewCache, path string, render func() (T, error)) (T, error) {
	var view T
	if views != nil && views.Get(ctx, path, &view) {
		monitoring.TrackViewCache(true)
		return view, nil
	}
	monitoring.TrackViewCache(false)

	view, err := render()
	if err != nil {
		return view, err
	}
	if views != nil {
		if err := views.Set(ctx, path, view); err != nil {
			slog.Warn("view cache write failed", "path", path, "error", err)
		}
	}
	return view, nil
}
