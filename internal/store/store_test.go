package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-events/internal/schema"
	"institute-events/internal/status"
)

func TestIsUniqueViolation(t *testing.T) {
	notUnique := validation.Errors{
		"event_id": validation.NewError("validation_not_unique", "Value must be unique."),
	}

	assert.True(t, isUniqueViolation(notUnique))
	assert.True(t, isUniqueViolation(fmt.Errorf("wrapped: %w", notUnique)))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: tickets.event_id, tickets.user_id")))

	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(validation.Errors{"title": validation.NewError("validation_required", "Cannot be blank.")}))
	assert.False(t, isUniqueViolation(errors.New("disk full")))
}

func TestSaveErr(t *testing.T) {
	err := saveErr(errors.New("UNIQUE constraint failed: staff_attendance.staff_id"), "attendance")
	assert.ErrorIs(t, err, status.ErrConflict)

	err = saveErr(errors.New("disk full"), "attendance")
	assert.NotErrorIs(t, err, status.ErrConflict)
	assert.Contains(t, err.Error(), "save attendance")

	err = saveErr(validation.Errors{"title": validation.NewError("validation_max_text_constraint", "Must be less than 300 character(s).")}, "event")
	assert.ErrorIs(t, err, status.ErrValidation)
	assert.NotErrorIs(t, err, status.ErrConflict)
	var serr *schema.Error
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Fields, "title")
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(sql.ErrNoRows, "event e1"), status.ErrNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("query: %w", sql.ErrNoRows), "event e1"), status.ErrNotFound)

	err := notFound(errors.New("db locked"), "event e1")
	assert.NotErrorIs(t, err, status.ErrNotFound)
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, uniq([]string{"a", "", "b", "a"}))
	assert.Empty(t, uniq(nil))
}
