package models

import (
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
)

type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         roles.Role `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty" db:"last_seen_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

type CreateUserRequest struct {
	Username  string     `json:"username" binding:"required,min=3,max=150"`
	Email     string     `json:"email" binding:"required,email"`
	FirstName string     `json:"first_name" binding:"max=100"`
	LastName  string     `json:"last_name" binding:"max=100"`
	Password  string     `json:"password" binding:"required,min=6"`
	Role      roles.Role `json:"role"`
}

type UpdateUserRequest struct {
	FirstName *string     `json:"first_name"`
	LastName  *string     `json:"last_name"`
	Password  *string     `json:"password"`
	Role      *roles.Role `json:"role"`
	IsActive  *bool       `json:"is_active"`
}

type UserChanges struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	Role         *string
	IsActive     *bool
}

func (c *UserChanges) HasChanges() bool {
	return c.FirstName != nil || c.LastName != nil || c.Email != nil ||
		c.PasswordHash != nil || c.Role != nil || c.IsActive != nil
}

func (u *User) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   u.ID,
		ResourceType: "user",
	}
}
