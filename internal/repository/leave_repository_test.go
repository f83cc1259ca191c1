package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

func newLeaveMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var leaveRowColumns = []string{
	"id", "requester_id", "requester_name", "department", "roll_number", "class", "year", "section",
	"category", "from_date", "to_date", "days_count", "reason", "status", "submitted_at",
	"approval_flow", "current_approval_level", "approved_by", "approved_at", "remarks",
	"is_reapply", "original_request_id", "reapply_reason", "assigned_to", "created_at", "updated_at",
}

func leaveRow() *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(leaveRowColumns).AddRow(
		"leave-1", "stu-1", "Asha Rao", "CSE", "21CS042", "CSE-A", "3", "A",
		"SICK", now, now.AddDate(0, 0, 2), 3, "Fever", "PENDING", now,
		"TEACHER,HOD", "TEACHER", nil, nil, nil,
		false, nil, nil, nil, now, now,
	)
}

func TestLeaveRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectQuery("(?s)SELECT (.+) FROM leave_requests WHERE id = \\$1").
		WithArgs("leave-1").
		WillReturnRows(leaveRow())

	record, err := repo.GetByID(context.Background(), "leave-1")
	require.NoError(t, err)
	assert.Equal(t, "leave-1", record.ID)
	assert.Equal(t, models.LeaveStatusPending, record.Status)
	assert.Equal(t, models.ApprovalFlow{models.ApprovalRoleTeacher, models.ApprovalRoleHOD}, record.ApprovalFlow)
	require.NotNil(t, record.CurrentApprovalLevel)
	assert.Equal(t, models.ApprovalRoleTeacher, *record.CurrentApprovalLevel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectQuery("(?s)SELECT (.+) FROM leave_requests WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(leaveRowColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryListByApprover(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectQuery("(?s)SELECT (.+) FROM leave_requests\\s+WHERE assigned_to = \\$1 OR assigned_to = \\$2 OR position\\(\\$3 in approval_flow\\) > 0").
		WithArgs("teach-1", "teach1@campus.edu", "TEACHER").
		WillReturnRows(leaveRow())

	records, err := repo.ListByApprover(context.Background(), models.ApproverIdentity{
		ID: "teach-1", Email: "teach1@campus.edu", Role: models.ApprovalRoleTeacher,
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryListByClassScopeMonthWindow(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("(?s)SELECT (.+) FROM leave_requests WHERE 1=1 AND year = \\$1 AND section = \\$2 AND submitted_at >= \\$3 AND submitted_at < \\$4").
		WithArgs("3", "A", monthStart, monthStart.AddDate(0, 1, 0)).
		WillReturnRows(leaveRow())

	records, err := repo.ListByClassScope(context.Background(), models.ClassScope{
		Year: "3", Division: "A", Month: time.March, YearLabel: 2024,
	})
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectQuery("INSERT INTO leave_requests").
		WillReturnRows(leaveRow())

	level := models.ApprovalRoleTeacher
	record, err := repo.Create(context.Background(), &models.LeaveRecord{
		RequesterID:          "stu-1",
		RequesterName:        "Asha Rao",
		Category:             models.LeaveCategorySick,
		FromDate:             time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ToDate:               time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		DaysCount:            3,
		Reason:               "Fever",
		Status:               models.LeaveStatusPending,
		ApprovalFlow:         models.DefaultApprovalFlow(),
		CurrentApprovalLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, "leave-1", record.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryUpdateStatusAppliesDecision(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	approvedBy := "hod-1"
	approvedAt := time.Now().UTC()
	mock.ExpectExec("UPDATE leave_requests").
		WithArgs("APPROVED", nil, approvedBy, approvedAt, nil, sqlmock.AnyArg(), "leave-1", "PENDING", "HOD").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "leave-1", StatusMutation{
		Status:     models.LeaveStatusApproved,
		ApprovedBy: &approvedBy,
		ApprovedAt: &approvedAt,
	}, models.ApprovalRoleHOD)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRepositoryUpdateStatusLostRace(t *testing.T) {
	db, mock, cleanup := newLeaveMock(t)
	defer cleanup()
	repo := NewLeaveRepository(db)

	mock.ExpectExec("UPDATE leave_requests").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "leave-1", StatusMutation{
		Status: models.LeaveStatusRejected,
	}, models.ApprovalRoleTeacher)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
