package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("events")
		// the record API only exposes published events; writes are
		// superuser-only there and otherwise go through the dashboard
		collection.ListRule = types.Pointer("is_published = true")
		collection.ViewRule = types.Pointer("is_published = true")
		collection.CreateRule = nil
		collection.UpdateRule = nil
		collection.DeleteRule = nil

		collection.Fields.Add(
			&core.TextField{
				Name:     "title",
				Required: true,
				Min:      3,
				Max:      300,
			},
			&core.TextField{
				Name: "description",
			},
			&core.TextField{
				Name:     "event_date",
				Required: true,
				Pattern:  `^\d{4}-\d{2}-\d{2}$`,
			},
			&core.TextField{
				Name:    "start_time",
				Pattern: `^\d{2}:\d{2}(:\d{2})?$`,
			},
			&core.TextField{
				Name:    "end_time",
				Pattern: `^\d{2}:\d{2}(:\d{2})?$`,
			},
			&core.TextField{
				Name:     "venue",
				Required: true,
				Max:      300,
			},
			&core.SelectField{
				Name:      "category",
				Required:  true,
				MaxSelect: 1,
				Values: []string{
					"Theatre Plays",
					"Dance & Music Events",
					"Talks & Seminars",
					"Exhibitions",
					"Master class / Workshops",
					"Film Festival",
					"Other",
				},
			},
			&core.TextField{
				Name:     "organizer",
				Required: true,
				Max:      300,
			},
			&core.URLField{
				Name: "poster_url",
			},
			&core.BoolField{
				Name: "is_published",
			},
			&core.JSONField{
				Name:    "agenda",
				MaxSize: 1 << 16,
			},
			&core.RelationField{
				Name:         "created_by",
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)
		collection.AddIndex("idx_events_date", false, "event_date, start_time", "")
		collection.AddIndex("idx_events_published", false, "is_published", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
