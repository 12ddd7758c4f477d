package metadata

import "fmt"

type StaffRole string

const (
	StaffRoleAdmin StaffRole = "ADMIN"
	StaffRoleStaff StaffRole = "STAFF"
)

func NewStaffRole(value string) (StaffRole, error) {
	role := StaffRole(normalize(value))
	switch role {
	case StaffRoleAdmin, StaffRoleStaff:
		return role, nil
	case "":
		return StaffRoleStaff, nil
	default:
		return "", fmt.Errorf("invalid staff role: %s", value)
	}
}
