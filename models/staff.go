package models

import "time"

const (
	AttendanceCheckIn  = "check_in"
	AttendanceCheckOut = "check_out"
)

type StaffMember struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	PersonalDetails string    `json:"personal_details"`
	JoiningDate     string    `json:"joining_date,omitempty"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at"`
}

type StaffAttendance struct {
	ID           string     `json:"id"`
	StaffID      string     `json:"staff_id"`
	Date         string     `json:"date"` // YYYY-MM-DD
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

// StaffRow is a staff member with the attendance row for the current day.
type StaffRow struct {
	StaffMember
	Today *StaffAttendance `json:"today,omitempty"`
}
