package models

import (
	"time"

	"github.com/lib/pq"
)

// Role is the capability a user holds. It is resolved once at the API
// boundary and carried into the lifecycle engine, never re-derived from
// group lookups.
type Role string

const (
	RoleUser     Role = "user"
	RoleEngineer Role = "engineer"
	RoleAdmin    Role = "admin"
)

// IsStaff reports whether the role may see internal notes and act on
// complaints it does not own.
func (r Role) IsStaff() bool {
	return r == RoleEngineer || r == RoleAdmin
}

// User represents an account in the helpdesk portal.
type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	FullName   string `json:"full_name"`
	Email      string `gorm:"index" json:"email"`
	Role       Role   `gorm:"type:text;not null;default:user" json:"role"`
	Department string `json:"department"`
	// Specialties are free-form tags admins consult when picking an engineer.
	Specialties pq.StringArray `gorm:"type:text[]" json:"specialties,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
}

// DisplayName returns the full name when set, otherwise the username.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
