package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"institute-events/models"
)

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// MaxTextLength caps title, venue and organizer, matching the events collection.
const MaxTextLength = 300

var tooLong = validation.RuneLength(0, MaxTextLength).Error("must be no more than 300 characters")

// EventForm is the raw submission of the event create/edit form. Agenda holds
// the JSON-encoded list of agenda items.
type EventForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	EventDate   string `json:"event_date" form:"event_date"`
	StartTime   string `json:"start_time" form:"start_time"`
	EndTime     string `json:"end_time" form:"end_time"`
	Venue       string `json:"venue" form:"venue"`
	Category    string `json:"category" form:"category"`
	Organizer   string `json:"organizer" form:"organizer"`
	PosterURL   string `json:"poster_url" form:"poster_url"`
	IsPublished string `json:"is_published" form:"is_published"`
	Agenda      string `json:"agenda" form:"agenda"`
}

// ParseEvent validates the form and returns the normalized event payload.
// The same rules apply to create and update.
func ParseEvent(form EventForm) (models.EventInput, error) {
	form = trimForm(form)

	agenda, agendaErr := decodeAgenda(form.Agenda)

	err := validation.ValidateStruct(&form,
		validation.Field(&form.Title, validation.Required.Error("Title must be at least 3 characters"), validation.RuneLength(3, 0).Error("Title must be at least 3 characters"), tooLong),
		validation.Field(&form.EventDate, validation.Required.Error("Invalid date"), validation.By(eventDate)),
		validation.Field(&form.StartTime, validation.Match(timeOfDay).Error("must be a time of day (HH:MM)")),
		validation.Field(&form.EndTime, validation.Match(timeOfDay).Error("must be a time of day (HH:MM)")),
		validation.Field(&form.Venue, validation.Required.Error("Venue is required"), validation.RuneLength(3, 0).Error("Venue is required"), tooLong),
		validation.Field(&form.Category, validation.Required.Error("Please select a category"), validation.In(toAny(models.Categories)...).Error("Please select a category")),
		validation.Field(&form.Organizer, validation.Required.Error("Organizer is required"), validation.RuneLength(3, 0).Error("Organizer is required"), tooLong),
		validation.Field(&form.PosterURL, is.URL),
	)

	fields := validation.Errors{}
	if err != nil {
		var fe validation.Errors
		if !errors.As(err, &fe) {
			return models.EventInput{}, fmt.Errorf("validate event: %w", err)
		}
		for k, v := range fe {
			fields[k] = v
		}
	}
	if agendaErr != nil {
		fields["agenda"] = agendaErr
	} else if err := validation.Validate(agenda, validation.Each(validation.By(agendaItem))); err != nil {
		fields["agenda"] = err
	}
	if len(fields) > 0 {
		return models.EventInput{}, &Error{Fields: fields}
	}

	date, _ := models.ParseEventDate(form.EventDate)

	return models.EventInput{
		Title:       form.Title,
		Description: form.Description,
		EventDate:   date.Format(models.DateLayout),
		StartTime:   form.StartTime,
		EndTime:     form.EndTime,
		Venue:       form.Venue,
		Category:    form.Category,
		Organizer:   form.Organizer,
		PosterURL:   form.PosterURL,
		IsPublished: checked(form.IsPublished),
		Agenda:      agenda,
	}, nil
}

func decodeAgenda(raw string) ([]models.AgendaItem, error) {
	agenda := []models.AgendaItem{}
	if strings.TrimSpace(raw) == "" {
		return agenda, nil
	}
	if err := json.Unmarshal([]byte(raw), &agenda); err != nil {
		return nil, errors.New("must be a JSON list of agenda items")
	}
	if agenda == nil {
		agenda = []models.AgendaItem{}
	}
	return agenda, nil
}

func agendaItem(value interface{}) error {
	item, _ := value.(models.AgendaItem)
	return validation.Errors{
		"time":     validation.Validate(strings.TrimSpace(item.Time), validation.Required.Error("Time is required")),
		"activity": validation.Validate(strings.TrimSpace(item.Activity), validation.Required.Error("Activity is required")),
	}.Filter()
}

func eventDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := models.ParseEventDate(s); err != nil {
		return errors.New("Invalid date")
	}
	return nil
}

// checked mirrors HTML checkbox semantics: only "on" (or an explicit true)
// counts as set.
func checked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1":
		return true
	}
	return false
}

func trimForm(f EventForm) EventForm {
	f.Title = strings.TrimSpace(f.Title)
	f.EventDate = strings.TrimSpace(f.EventDate)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Venue = strings.TrimSpace(f.Venue)
	f.Category = strings.TrimSpace(f.Category)
	f.Organizer = strings.TrimSpace(f.Organizer)
	f.PosterURL = strings.TrimSpace(f.PosterURL)
	return f
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
