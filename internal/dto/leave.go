package dto

import (
	"time"

	"github.com/noah-isme/campus-ops-api/internal/models"
)

// SubmitLeaveRequest is the payload for creating a fresh leave request.
type SubmitLeaveRequest struct {
	Category   models.LeaveCategory `json:"category" binding:"required"`
	FromDate   string               `json:"from_date" binding:"required"`
	ToDate     string               `json:"to_date" binding:"required"`
	Reason     string               `json:"reason" binding:"required"`
	AssignedTo string               `json:"assigned_to,omitempty"`
}

// ReapplyLeaveRequest resubmits a rejected or returned request with an
// updated body and an optional explanation of what changed.
type ReapplyLeaveRequest struct {
	Category      models.LeaveCategory `json:"category" binding:"required"`
	FromDate      string               `json:"from_date" binding:"required"`
	ToDate        string               `json:"to_date" binding:"required"`
	Reason        string               `json:"reason" binding:"required"`
	ReapplyReason string               `json:"reapply_reason,omitempty"`
	AssignedTo    string               `json:"assigned_to,omitempty"`
}

// DecisionAction enumerates the decisions an approver may take.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "APPROVE"
	DecisionReject  DecisionAction = "REJECT"
	DecisionReturn  DecisionAction = "RETURN"
)

// Valid returns true when the action is supported.
func (a DecisionAction) Valid() bool {
	switch a {
	case DecisionApprove, DecisionReject, DecisionReturn:
		return true
	default:
		return false
	}
}

// DecideLeaveRequest is the payload for an approval decision.
type DecideLeaveRequest struct {
	Action  DecisionAction `json:"action" binding:"required"`
	Remarks string         `json:"remarks,omitempty"`
}

// ApproverQueueRequest scopes the reconciled pending queue for an approver.
type ApproverQueueRequest struct {
	Year       string `form:"year"`
	Semester   string `form:"semester"`
	Division   string `form:"division"`
	Subject    string `form:"subject"`
	Month      int    `form:"month"`
	YearLabel  int    `form:"yearLabel"`
	Department string `form:"department"`
}

// LeaveSnapshot is one delivery of the requester's refresh pipeline.
type LeaveSnapshot struct {
	Records   []models.LeaveRecord `json:"records"`
	FetchedAt time.Time            `json:"fetched_at"`
	Err       error                `json:"-"`
}

// LeaveDashboardResponse bundles stats with the on-leave partition for a date.
type LeaveDashboardResponse struct {
	Stats     models.LeaveStats      `json:"stats"`
	Partition models.RosterPartition `json:"partition"`
}
