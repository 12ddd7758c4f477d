package roles

import "fmt"

// Role is the permission level carried in the access token.
type Role string

const (
	User  Role = "user"
	Staff Role = "staff"
	Admin Role = "admin"
)

type HierarchyLevel int

const (
	UserLevel  HierarchyLevel = 1
	StaffLevel HierarchyLevel = 2
	AdminLevel HierarchyLevel = 3
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", value)
	}
	return role, nil
}

// GetHierarchyLevel returns 0 for unknown roles so they never pass a check.
func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case User:
		return UserLevel
	case Staff:
		return StaffLevel
	case Admin:
		return AdminLevel
	default:
		return 0
	}
}

func (r Role) HasPermission(requiredRole Role) bool {
	level := r.GetHierarchyLevel()
	return level > 0 && level >= requiredRole.GetHierarchyLevel()
}

// IsStaffOrAdmin is the gate for every stock-changing staff action.
func (r Role) IsStaffOrAdmin() bool {
	return r.HasPermission(Staff)
}

func (r Role) IsValid() bool {
	switch r {
	case User, Staff, Admin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
