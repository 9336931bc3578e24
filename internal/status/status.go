package status

import "errors"

var (
	ErrValidation         = errors.New("validation: invalid input")
	ErrNotFound           = errors.New("record: not found")
	ErrUnauthorized       = errors.New("auth: login required")
	ErrForbidden          = errors.New("auth: not allowed")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrConflict           = errors.New("record: conflict")
	ErrAlreadyBooked      = errors.New("ticket: already booked")
	ErrAlreadyCheckedIn   = errors.New("attendance: already checked in today")
	ErrNoCheckIn          = errors.New("attendance: no check-in record for today")
	ErrInvalidRole        = errors.New("profile: invalid role")
)
