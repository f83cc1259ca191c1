package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

const leaveColumns = `id, requester_id, requester_name, department, roll_number, class, year, section,
        category, from_date, to_date, days_count, reason, status, submitted_at,
        approval_flow, current_approval_level, approved_by, approved_at, remarks,
        is_reapply, original_request_id, reapply_reason, assigned_to, created_at, updated_at`

// LeaveRepository handles persistence for leave requests.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository constructs the repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// GetByID loads a single leave request.
func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*models.LeaveRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE id = $1`, leaveColumns)
	var record models.LeaveRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
		}
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return &record, nil
}

// ListByRequester returns all leave requests owned by a user, newest first.
func (r *LeaveRepository) ListByRequester(ctx context.Context, userID string) ([]models.LeaveRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE requester_id = $1 ORDER BY submitted_at DESC`, leaveColumns)
	var records []models.LeaveRecord
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("list leave requests by requester: %w", err)
	}
	return records, nil
}

// ListByApprover returns requests addressed to the approver: explicitly
// assigned to them, or routed through their approval-flow role.
func (r *LeaveRepository) ListByApprover(ctx context.Context, approver models.ApproverIdentity) ([]models.LeaveRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM leave_requests
        WHERE assigned_to = $1 OR assigned_to = $2 OR position($3 in approval_flow) > 0
        ORDER BY submitted_at DESC`, leaveColumns)
	var records []models.LeaveRecord
	if err := r.db.SelectContext(ctx, &records, query, approver.ID, approver.Email, string(approver.Role)); err != nil {
		return nil, fmt.Errorf("list leave requests by approver: %w", err)
	}
	return records, nil
}

// ListByClassScope returns requests for a class/department slice submitted
// within the scope's calendar month.
func (r *LeaveRepository) ListByClassScope(ctx context.Context, scope models.ClassScope) ([]models.LeaveRecord, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if scope.Year != "" {
		where = append(where, fmt.Sprintf("year = $%d", len(args)+1))
		args = append(args, scope.Year)
	}
	if scope.Division != "" {
		where = append(where, fmt.Sprintf("section = $%d", len(args)+1))
		args = append(args, scope.Division)
	}
	if scope.Department != "" {
		where = append(where, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, scope.Department)
	}
	if scope.Month >= time.January && scope.Month <= time.December && scope.YearLabel > 0 {
		monthStart := time.Date(scope.YearLabel, scope.Month, 1, 0, 0, 0, 0, time.UTC)
		where = append(where, fmt.Sprintf("submitted_at >= $%d", len(args)+1))
		args = append(args, monthStart)
		where = append(where, fmt.Sprintf("submitted_at < $%d", len(args)+1))
		args = append(args, monthStart.AddDate(0, 1, 0))
	}

	query := fmt.Sprintf(`SELECT %s FROM leave_requests WHERE %s ORDER BY submitted_at DESC`,
		leaveColumns, strings.Join(where, " AND "))
	var records []models.LeaveRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list leave requests by class scope: %w", err)
	}
	return records, nil
}

// Create persists a new leave request, assigning id and submission time.
func (r *LeaveRepository) Create(ctx context.Context, record *models.LeaveRecord) (*models.LeaveRecord, error) {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = now
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO leave_requests (%s)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
        RETURNING %s`, leaveColumns, leaveColumns)
	var stored models.LeaveRecord
	err := r.db.GetContext(ctx, &stored, query,
		record.ID, record.RequesterID, record.RequesterName, record.Department, record.RollNumber,
		record.Class, record.Year, record.Section,
		record.Category, record.FromDate, record.ToDate, record.DaysCount, record.Reason,
		record.Status, record.SubmittedAt,
		record.ApprovalFlow, record.CurrentApprovalLevel, record.ApprovedBy, record.ApprovedAt, record.Remarks,
		record.IsReapply, record.OriginalRequestID, record.ReapplyReason, record.AssignedTo,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &stored, nil
}

// StatusMutation captures the fields a decision writes.
type StatusMutation struct {
	Status               models.LeaveStatus
	CurrentApprovalLevel *models.ApprovalRole
	ApprovedBy           *string
	ApprovedAt           *time.Time
	Remarks              *string
}

// UpdateStatus applies a decision conditionally: the row must still be
// PENDING at expectedLevel. A zero-row update means another approver won
// the race and surfaces as a conflict.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, mutation StatusMutation, expectedLevel models.ApprovalRole) error {
	query := `UPDATE leave_requests
        SET status = $1, current_approval_level = $2, approved_by = $3, approved_at = $4, remarks = $5, updated_at = $6
        WHERE id = $7 AND status = $8 AND current_approval_level = $9`
	result, err := r.db.ExecContext(ctx, query,
		mutation.Status, mutation.CurrentApprovalLevel, mutation.ApprovedBy, mutation.ApprovedAt, mutation.Remarks,
		time.Now().UTC(), id, models.LeaveStatusPending, string(expectedLevel))
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update leave status rows: %w", err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrConflict, "leave request was decided concurrently")
	}
	return nil
}
