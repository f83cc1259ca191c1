package models

import "time"

// Club is a student club or society.
type Club struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description,omitempty"`
	Department    string    `db:"department" json:"department,omitempty"`
	CoordinatorID string    `db:"coordinator_id" json:"coordinator_id,omitempty"`
	MemberCount   int       `db:"member_count" json:"member_count"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// ClubMember links a user to a club.
type ClubMember struct {
	ID       string    `db:"id" json:"id"`
	ClubID   string    `db:"club_id" json:"club_id"`
	UserID   string    `db:"user_id" json:"user_id"`
	UserName string    `db:"user_name" json:"user_name"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// ClubFilter scopes club listing queries.
type ClubFilter struct {
	Department string
	Active     *bool
	Search     string
	Page       int
	PageSize   int
}
