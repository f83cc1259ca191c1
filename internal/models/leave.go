package models

import "time"

// LeaveStatus represents the lifecycle state of a leave request.
type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "PENDING"
	LeaveStatusApproved LeaveStatus = "APPROVED"
	LeaveStatusRejected LeaveStatus = "REJECTED"
	LeaveStatusReturned LeaveStatus = "RETURNED"
)

// Valid returns true when the status is a supported value.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected, LeaveStatusReturned:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status ends this flow instance.
// RETURNED is terminal for the instance but eligible for reapplication.
func (s LeaveStatus) Terminal() bool {
	return s == LeaveStatusApproved || s == LeaveStatusRejected || s == LeaveStatusReturned
}

// ReapplyEligible reports whether a new request may be derived from this status.
func (s LeaveStatus) ReapplyEligible() bool {
	return s == LeaveStatusRejected || s == LeaveStatusReturned
}

// LeaveCategory enumerates the supported kinds of leave.
type LeaveCategory string

const (
	LeaveCategorySick    LeaveCategory = "SICK"
	LeaveCategoryCasual  LeaveCategory = "CASUAL"
	LeaveCategoryOnDuty  LeaveCategory = "ON_DUTY"
	LeaveCategoryMedical LeaveCategory = "MEDICAL"
	LeaveCategoryOther   LeaveCategory = "OTHER"
)

// Valid returns true when the category is a supported value.
func (c LeaveCategory) Valid() bool {
	switch c {
	case LeaveCategorySick, LeaveCategoryCasual, LeaveCategoryOnDuty, LeaveCategoryMedical, LeaveCategoryOther:
		return true
	default:
		return false
	}
}

// ApprovalRole names a role in the approval flow of a leave request.
type ApprovalRole string

const (
	ApprovalRoleTeacher ApprovalRole = "TEACHER"
	ApprovalRoleHOD     ApprovalRole = "HOD"
)

// DefaultApprovalFlow returns the standard ordered approval path.
// The flow is fixed at creation and immutable afterwards; a record can
// never skip or gain approval stages mid-flight.
func DefaultApprovalFlow() []ApprovalRole {
	return []ApprovalRole{ApprovalRoleTeacher, ApprovalRoleHOD}
}

// LeaveRecord is a single leave request with its approval lifecycle.
type LeaveRecord struct {
	ID            string `db:"id" json:"id"`
	RequesterID   string `db:"requester_id" json:"requester_id"`
	RequesterName string `db:"requester_name" json:"requester_name"`
	Department    string `db:"department" json:"department,omitempty"`
	RollNumber    string `db:"roll_number" json:"roll_number,omitempty"`
	Class         string `db:"class" json:"class,omitempty"`
	Year          string `db:"year" json:"year,omitempty"`
	Section       string `db:"section" json:"section,omitempty"`

	Category  LeaveCategory `db:"category" json:"category"`
	FromDate  time.Time     `db:"from_date" json:"from_date"`
	ToDate    time.Time     `db:"to_date" json:"to_date"`
	DaysCount int           `db:"days_count" json:"days_count"`
	Reason    string        `db:"reason" json:"reason"`

	Status               LeaveStatus    `db:"status" json:"status"`
	SubmittedAt          time.Time      `db:"submitted_at" json:"submitted_at"`
	ApprovalFlow         ApprovalFlow   `db:"approval_flow" json:"approval_flow"`
	CurrentApprovalLevel *ApprovalRole  `db:"current_approval_level" json:"current_approval_level,omitempty"`
	ApprovedBy           *string        `db:"approved_by" json:"approved_by,omitempty"`
	ApprovedAt           *time.Time     `db:"approved_at" json:"approved_at,omitempty"`
	Remarks              *string        `db:"remarks" json:"remarks,omitempty"`

	IsReapply         bool    `db:"is_reapply" json:"is_reapply"`
	OriginalRequestID *string `db:"original_request_id" json:"original_request_id,omitempty"`
	ReapplyReason     *string `db:"reapply_reason" json:"reapply_reason,omitempty"`

	AssignedTo *string `db:"assigned_to" json:"assigned_to,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AtLevel reports whether the record currently awaits a decision from role.
func (r *LeaveRecord) AtLevel(role ApprovalRole) bool {
	return r.Status == LeaveStatusPending && r.CurrentApprovalLevel != nil && *r.CurrentApprovalLevel == role
}

// NextLevel returns the role after the current one in the flow, or nil when
// the current level is the last step.
func (r *LeaveRecord) NextLevel() *ApprovalRole {
	if r.CurrentApprovalLevel == nil {
		return nil
	}
	for i, role := range r.ApprovalFlow {
		if role == *r.CurrentApprovalLevel && i+1 < len(r.ApprovalFlow) {
			next := r.ApprovalFlow[i+1]
			return &next
		}
	}
	return nil
}

// Covers reports whether the record's inclusive date range spans the given day.
func (r *LeaveRecord) Covers(date time.Time) bool {
	day := DateOnly(date)
	return !day.Before(DateOnly(r.FromDate)) && !day.After(DateOnly(r.ToDate))
}

// InclusiveDays computes the whole-day span between two calendar dates.
// Both bounds count: 2024-03-05 through 2024-03-07 is 3 days.
func InclusiveDays(from, to time.Time) int {
	f := DateOnly(from)
	t := DateOnly(to)
	if t.Before(f) {
		return 0
	}
	return int(t.Sub(f).Hours()/24) + 1
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClassScope selects the class/department slice queried by an approver.
type ClassScope struct {
	Year       string
	Semester   string
	Division   string
	Subject    string
	Month      time.Month
	YearLabel  int
	Department string
}

// ApproverIdentity carries the fields the aggregator needs to decide
// addressing and visibility for an approver.
type ApproverIdentity struct {
	ID         string
	Email      string
	Role       ApprovalRole
	Department string
}

// LeaveStats is the dashboard rollup over a reconciled record set.
type LeaveStats struct {
	RosterSize    int `json:"roster_size"`
	OnLeaveToday  int `json:"on_leave_today"`
	Pending       int `json:"pending"`
	ApprovedMonth int `json:"approved_this_month"`
	RejectedMonth int `json:"rejected_this_month"`
}

// RosterPartition splits a roster into present and absent member ids for a date.
type RosterPartition struct {
	Date    time.Time `json:"date"`
	Present []string  `json:"present"`
	Absent  []string  `json:"absent"`
}
