package models

import (
	"slices"
	"time"
)

const (
	RoleSuperAdmin     = "super_admin"
	RoleInstituteAdmin = "institute_admin"
	RoleStaff          = "staff"
	RoleViewer         = "viewer"
)

var Roles = []string{RoleSuperAdmin, RoleInstituteAdmin, RoleStaff, RoleViewer}

type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	return slices.Contains(Roles, role)
}

// IsAdmin reports whether the profile may manage roles and staff.
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleSuperAdmin || p.Role == RoleInstituteAdmin
}
