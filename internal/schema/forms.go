package schema

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"institute-events/models"
)

// GuestCount parses the guest_count form value. A blank value means no guests.
func GuestCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fieldError("guest_count", errors.New("must be a whole number"))
	}
	if err := validation.Validate(n, validation.Min(0), validation.Max(models.MaxGuests)); err != nil {
		return 0, fieldError("guest_count", err)
	}
	return n, nil
}

// TicketStatus checks a requested ticket status transition target.
func TicketStatus(s string) error {
	if !models.ValidTicketStatus(s) {
		return fieldError("status", errors.New("must be one of confirmed, cancelled, checked_in"))
	}
	return nil
}

// StaffMember validates a staff member before it is stored. Role defaults to
// staff when blank.
func StaffMember(m *models.StaffMember) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Role = strings.TrimSpace(m.Role)
	if m.Role == "" {
		m.Role = models.RoleStaff
	}

	err := validation.ValidateStruct(m,
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Email, is.EmailFormat),
		validation.Field(&m.JoiningDate, validation.By(eventDate)),
	)
	if err == nil {
		if m.JoiningDate != "" {
			d, _ := models.ParseEventDate(m.JoiningDate)
			m.JoiningDate = d.Format(models.DateLayout)
		}
		return nil
	}
	var fe validation.Errors
	if errors.As(err, &fe) {
		return &Error{Fields: fe}
	}
	return err
}

// MinPasswordLength matches the users auth collection.
const MinPasswordLength = 8

// Credentials validates a login submission.
func Credentials(email, password string) error {
	return credentials(email, password, validation.Required)
}

// Registration validates a signup submission; new passwords need at least
// MinPasswordLength characters.
func Registration(email, password string) error {
	return credentials(email, password, validation.Required, validation.RuneLength(MinPasswordLength, 0))
}

func credentials(email, password string, passwordRules ...validation.Rule) error {
	err := validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, passwordRules...),
	}.Filter()
	if err == nil {
		return nil
	}
	return &Error{Fields: err.(validation.Errors)}
}
