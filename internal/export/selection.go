package export

import (
	"slices"
	"sort"
	"time"

	"institute-events/models"
)

const (
	MonthLayout = "2006-01"
	AllValues   = "all"
)

// Selection narrows the events that go into a document.
type Selection struct {
	Month    string   `json:"month"`    // yyyy-MM or "all"
	Category string   `json:"category"` // exact category or "all"
	IDs      []string `json:"ids"`      // empty selects every filtered event
}

func Select(events []models.Event, sel Selection) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if !isAll(sel.Month) && monthOf(e) != sel.Month {
			continue
		}
		if !isAll(sel.Category) && e.Category != sel.Category {
			continue
		}
		if len(sel.IDs) > 0 && !slices.Contains(sel.IDs, e.ID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Months lists the distinct yyyy-MM values of the events, newest first.
func Months(events []models.Event) []string {
	set := map[string]struct{}{}
	for _, e := range events {
		if m := monthOf(e); m != "" {
			set[m] = struct{}{}
		}
	}
	months := make([]string, 0, len(set))
	for m := range set {
		months = append(months, m)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Categories lists the distinct non-empty categories, alphabetically.
func Categories(events []models.Event) []string {
	set := map[string]struct{}{}
	for _, e := range events {
		if e.Category != "" {
			set[e.Category] = struct{}{}
		}
	}
	cats := make([]string, 0, len(set))
	for c := range set {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// DetailsText is the automatic "additional details" line: the selected month,
// or the month range spanned by the events when every month is selected.
func DetailsText(month string, events []models.Event) string {
	if !isAll(month) {
		t, err := time.Parse(MonthLayout, month)
		if err != nil {
			return ""
		}
		return t.Format("January 2006")
	}

	var first, last time.Time
	for _, e := range events {
		d := e.Date()
		if d.IsZero() {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	if first.IsZero() {
		return ""
	}
	start, end := first.Format("January 2006"), last.Format("January 2006")
	if start == end {
		return start
	}
	return start + " - " + end
}

func monthOf(e models.Event) string {
	d := e.Date()
	if d.IsZero() {
		return ""
	}
	return d.Format(MonthLayout)
}

func isAll(v string) bool {
	return v == "" || v == AllValues
}
