package models

import "strings"

// Role is the caller's role claim. Roles form a flat set, not a hierarchy.
type Role string

const (
	RoleStudent       Role = "student"
	RoleFaculty       Role = "faculty"
	RoleTechSecretary Role = "tech_secretary"
	RoleAdmin         Role = "admin"
)

// AllRoles lists every known role.
var AllRoles = []Role{RoleStudent, RoleFaculty, RoleTechSecretary, RoleAdmin}

// ParseRole normalizes a role claim. An empty claim is treated as student;
// an unrecognized one reports ok=false.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleStudent, true
	}
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Principal identifies the authenticated caller of an operation.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}
