package models

import "time"

// VisitorStatus tracks whether a visitor is still on campus.
type VisitorStatus string

const (
	VisitorStatusCheckedIn  VisitorStatus = "CHECKED_IN"
	VisitorStatusCheckedOut VisitorStatus = "CHECKED_OUT"
)

// Visitor is a single campus visit log entry.
type Visitor struct {
	ID           string        `db:"id" json:"id"`
	FullName     string        `db:"full_name" json:"full_name"`
	Phone        string        `db:"phone" json:"phone"`
	Purpose      string        `db:"purpose" json:"purpose"`
	HostName     string        `db:"host_name" json:"host_name,omitempty"`
	Department   string        `db:"department" json:"department,omitempty"`
	Status       VisitorStatus `db:"status" json:"status"`
	CheckedInAt  time.Time     `db:"checked_in_at" json:"checked_in_at"`
	CheckedOutAt *time.Time    `db:"checked_out_at" json:"checked_out_at,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// VisitorFilter scopes visitor listing queries.
type VisitorFilter struct {
	Status     *VisitorStatus
	Department string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}
