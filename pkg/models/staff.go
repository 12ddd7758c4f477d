package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
)

type Staff struct {
	ID         int                `json:"id" db:"id"`
	FirstName  string             `json:"first_name" db:"first_name"`
	LastName   string             `json:"last_name" db:"last_name"`
	Email      string             `json:"email" db:"email"`
	Role       metadata.StaffRole `json:"role" db:"role"`
	Department *string            `json:"department,omitempty" db:"department"`
	Phone      *string            `json:"phone,omitempty" db:"phone"`
	EmployeeID string             `json:"employee_id" db:"employee_id"`
	DateJoined time.Time          `json:"date_joined" db:"date_joined"`
	IsActive   bool               `json:"is_active" db:"is_active"`
	UserID     *int               `json:"user_id,omitempty" db:"user_id"`
}

func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

type CreateStaffRequest struct {
	FirstName  string  `json:"first_name" binding:"required,max=100"`
	LastName   string  `json:"last_name" binding:"required,max=100"`
	Email      string  `json:"email" binding:"required,email"`
	Role       string  `json:"role"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	EmployeeID string  `json:"employee_id" binding:"required,max=50"`
	Password   string  `json:"password"`
}

type UpdateStaffRequest struct {
	FirstName  *string `json:"first_name" binding:"omitempty,max=100"`
	LastName   *string `json:"last_name" binding:"omitempty,max=100"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Role       *string `json:"role"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Phone      *string `json:"phone" binding:"omitempty,max=20"`
	IsActive   *bool   `json:"is_active"`
	Password   string  `json:"password"`
}

func (s *Staff) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   s.ID,
		ResourceType: "staff",
	}
}
