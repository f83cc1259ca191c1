package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleHOD         UserRole = "HOD"
	RoleTeacher     UserRole = "TEACHER"
	RoleStudent     UserRole = "STUDENT"
	RoleDriver      UserRole = "DRIVER"
	RoleNonTeaching UserRole = "NON_TEACHING"
)

// ApproverRole maps a user role onto its approval-flow role, when it has one.
func (r UserRole) ApproverRole() (ApprovalRole, bool) {
	switch r {
	case RoleTeacher:
		return ApprovalRoleTeacher, true
	case RoleHOD:
		return ApprovalRoleHOD, true
	default:
		return "", false
	}
}

// User represents an application user stored in the users table.
type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	FullName   string    `db:"full_name" json:"full_name"`
	Role       UserRole  `db:"role" json:"role"`
	Department string    `db:"department" json:"department,omitempty"`
	RollNumber string    `db:"roll_number" json:"roll_number,omitempty"`
	Class      string    `db:"class" json:"class,omitempty"`
	Year       string    `db:"year" json:"year,omitempty"`
	Section    string    `db:"section" json:"section,omitempty"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
