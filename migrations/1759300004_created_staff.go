package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		members := core.NewBaseCollection("staff_members")
		members.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      200,
			},
			&core.EmailField{
				Name: "email",
			},
			&core.TextField{
				Name: "phone",
				Max:  40,
			},
			&core.TextField{
				Name: "role",
				Max:  100,
			},
			&core.TextField{
				Name: "personal_details",
			},
			&core.TextField{
				Name:    "joining_date",
				Pattern: `^(\d{4}-\d{2}-\d{2})?$`,
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
		if err := app.Save(members); err != nil {
			return err
		}

		attendance := core.NewBaseCollection("staff_attendance")
		attendance.Fields.Add(
			&core.RelationField{
				Name:          "staff_id",
				CollectionId:  members.Id,
				MaxSelect:     1,
				Required:      true,
				CascadeDelete: true,
			},
			&core.TextField{
				Name:     "date",
				Required: true,
				Pattern:  `^\d{4}-\d{2}-\d{2}$`,
			},
			&core.DateField{
				Name: "check_in_time",
			},
			&core.DateField{
				Name: "check_out_time",
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
		// one attendance row per member and day
		attendance.AddIndex("idx_attendance_staff_date", true, "staff_id, date", "")
		attendance.AddIndex("idx_attendance_date", false, "date", "")

		return app.Save(attendance)
	}, func(app core.App) error {
		for _, name := range []string{"staff_attendance", "staff_members"} {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				return err
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}
		return nil
	})
}
