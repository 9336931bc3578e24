// Package store maps PocketBase records to the portal's models.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"institute-events/internal/schema"
	"institute-events/internal/status"
)

const (
	CollectionUsers           = "users"
	CollectionProfiles        = "profiles"
	CollectionEvents          = "events"
	CollectionTickets         = "tickets"
	CollectionStaffMembers    = "staff_members"
	CollectionStaffAttendance = "staff_attendance"
)

// notFound converts the "no rows" error PocketBase returns for missing
// records into status.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, status.ErrNotFound)
	}
	return fmt.Errorf("find %s: %w", what, err)
}

// saveErr reports unique index violations as status.ErrConflict and other
// field rejections as a schema.Error.
func saveErr(err error, what string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("save %s: %w", what, status.ErrConflict)
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return fmt.Errorf("save %s: %w", what, &schema.Error{Fields: verrs})
	}
	return fmt.Errorf("save %s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			var ve validation.Error
			if errors.As(fe, &ve) && ve.Code() == "validation_not_unique" {
				return true
			}
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
