package models

import "time"

// LostFoundStatus tracks the claim state of a lost & found item.
type LostFoundStatus string

const (
	LostFoundStatusOpen    LostFoundStatus = "OPEN"
	LostFoundStatusClaimed LostFoundStatus = "CLAIMED"
)

// LostFoundItem is a reported lost or found item.
type LostFoundItem struct {
	ID           string          `db:"id" json:"id"`
	Title        string          `db:"title" json:"title"`
	Description  string          `db:"description" json:"description,omitempty"`
	Location     string          `db:"location" json:"location,omitempty"`
	ReportedBy   string          `db:"reported_by" json:"reported_by"`
	Status       LostFoundStatus `db:"status" json:"status"`
	ClaimedBy    *string         `db:"claimed_by" json:"claimed_by,omitempty"`
	ClaimedAt    *time.Time      `db:"claimed_at" json:"claimed_at,omitempty"`
	ReportedAt   time.Time       `db:"reported_at" json:"reported_at"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// LostFoundFilter scopes lost & found listing queries.
type LostFoundFilter struct {
	Status   *LostFoundStatus
	Search   string
	Page     int
	PageSize int
}
