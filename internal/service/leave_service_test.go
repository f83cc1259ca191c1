package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/repository"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type fakeLeaveStore struct {
	records      map[string]*models.LeaveRecord
	created      []*models.LeaveRecord
	lastMutation *repository.StatusMutation
	lastExpected models.ApprovalRole
	updateErr    error
	createErr    error
}

func newFakeLeaveStore(records ...*models.LeaveRecord) *fakeLeaveStore {
	store := &fakeLeaveStore{records: make(map[string]*models.LeaveRecord)}
	for _, r := range records {
		store.records[r.ID] = r
	}
	return store
}

func (f *fakeLeaveStore) GetByID(_ context.Context, id string) (*models.LeaveRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
	}
	clone := *record
	return &clone, nil
}

func (f *fakeLeaveStore) ListByRequester(_ context.Context, userID string) ([]models.LeaveRecord, error) {
	var out []models.LeaveRecord
	for _, r := range f.records {
		if r.RequesterID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveStore) Create(_ context.Context, record *models.LeaveRecord) (*models.LeaveRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if record.ID == "" {
		record.ID = "generated-id"
	}
	f.created = append(f.created, record)
	f.records[record.ID] = record
	clone := *record
	return &clone, nil
}

func (f *fakeLeaveStore) UpdateStatus(_ context.Context, id string, mutation repository.StatusMutation, expectedLevel models.ApprovalRole) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	record, ok := f.records[id]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "leave request not found")
	}
	if record.Status != models.LeaveStatusPending || record.CurrentApprovalLevel == nil || *record.CurrentApprovalLevel != expectedLevel {
		return appErrors.Clone(appErrors.ErrConflict, "leave request was decided concurrently")
	}
	f.lastMutation = &mutation
	f.lastExpected = expectedLevel
	record.Status = mutation.Status
	record.CurrentApprovalLevel = mutation.CurrentApprovalLevel
	record.ApprovedBy = mutation.ApprovedBy
	record.ApprovedAt = mutation.ApprovedAt
	record.Remarks = mutation.Remarks
	return nil
}

type fakeDirectory struct {
	users map[string]*models.User
}

func (f *fakeDirectory) FindByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return user, nil
}

func studentClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "stu-1", Role: models.RoleStudent, FullName: "Asha Rao", Department: "CSE"}
}

func teacherClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "teach-1", Role: models.RoleTeacher, FullName: "Teacher One", Department: "CSE"}
}

func hodClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "hod-1", Role: models.RoleHOD, FullName: "Head One", Department: "CSE"}
}

func pendingAt(level models.ApprovalRole) *models.LeaveRecord {
	return &models.LeaveRecord{
		ID:                   "leave-1",
		RequesterID:          "stu-1",
		RequesterName:        "Asha Rao",
		Department:           "CSE",
		Category:             models.LeaveCategorySick,
		FromDate:             time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ToDate:               time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		DaysCount:            3,
		Reason:               "Fever",
		Status:               models.LeaveStatusPending,
		SubmittedAt:          time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
		ApprovalFlow:         models.DefaultApprovalFlow(),
		CurrentApprovalLevel: &level,
	}
}

func TestLeaveServiceSubmit(t *testing.T) {
	store := newFakeLeaveStore()
	svc := NewLeaveService(LeaveServiceParams{Store: store, Directory: &fakeDirectory{users: map[string]*models.User{
		"stu-1": {ID: "stu-1", RollNumber: "21CS042", Class: "CSE-A", Year: "3", Section: "A"},
	}}})

	record, err := svc.Submit(context.Background(), dto.SubmitLeaveRequest{
		Category: models.LeaveCategorySick,
		FromDate: "2024-03-05",
		ToDate:   "2024-03-07",
		Reason:   "Fever",
	}, studentClaims())
	require.NoError(t, err)

	assert.Equal(t, models.LeaveStatusPending, record.Status)
	assert.Equal(t, 3, record.DaysCount)
	require.NotNil(t, record.CurrentApprovalLevel)
	assert.Equal(t, models.ApprovalRoleTeacher, *record.CurrentApprovalLevel)
	assert.Equal(t, models.ApprovalFlow(models.DefaultApprovalFlow()), record.ApprovalFlow)
	assert.Equal(t, "21CS042", record.RollNumber)
	assert.False(t, record.IsReapply)
	assert.Nil(t, record.OriginalRequestID)
}

func TestLeaveServiceSubmitRejectsReversedRange(t *testing.T) {
	svc := NewLeaveService(LeaveServiceParams{Store: newFakeLeaveStore()})

	_, err := svc.Submit(context.Background(), dto.SubmitLeaveRequest{
		Category: models.LeaveCategoryCasual,
		FromDate: "2024-03-07",
		ToDate:   "2024-03-05",
		Reason:   "Trip",
	}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceSubmitRejectsUnknownCategory(t *testing.T) {
	svc := NewLeaveService(LeaveServiceParams{Store: newFakeLeaveStore()})

	_, err := svc.Submit(context.Background(), dto.SubmitLeaveRequest{
		Category: "HOLIDAY",
		FromDate: "2024-03-05",
		ToDate:   "2024-03-07",
		Reason:   "Trip",
	}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideAdvancesLevel(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	record, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, teacherClaims())
	require.NoError(t, err)

	assert.Equal(t, models.LeaveStatusPending, record.Status)
	require.NotNil(t, record.CurrentApprovalLevel)
	assert.Equal(t, models.ApprovalRoleHOD, *record.CurrentApprovalLevel)
	assert.Nil(t, record.ApprovedBy)
	assert.Equal(t, models.ApprovalRoleTeacher, store.lastExpected)
}

func TestLeaveServiceDecideFinalApproval(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleHOD))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	record, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, hodClaims())
	require.NoError(t, err)

	assert.Equal(t, models.LeaveStatusApproved, record.Status)
	require.NotNil(t, record.ApprovedBy)
	assert.Equal(t, "hod-1", *record.ApprovedBy)
	assert.NotNil(t, record.ApprovedAt)
	assert.Nil(t, record.CurrentApprovalLevel)
}

func TestLeaveServiceDecideRejectRecordsRemarks(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	record, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionReject, Remarks: "Overlaps exams"}, teacherClaims())
	require.NoError(t, err)

	assert.Equal(t, models.LeaveStatusRejected, record.Status)
	require.NotNil(t, record.Remarks)
	assert.Equal(t, "Overlaps exams", *record.Remarks)
}

func TestLeaveServiceDecideWrongLevelLeavesRecordUnchanged(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, hodClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	record, getErr := store.GetByID(context.Background(), "leave-1")
	require.NoError(t, getErr)
	assert.Equal(t, models.LeaveStatusPending, record.Status)
	assert.Equal(t, models.ApprovalRoleTeacher, *record.CurrentApprovalLevel)
	assert.Nil(t, store.lastMutation)
}

func TestLeaveServiceDecideNonApproverForbidden(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideNonPendingRefused(t *testing.T) {
	record := pendingAt(models.ApprovalRoleTeacher)
	record.Status = models.LeaveStatusRejected
	record.CurrentApprovalLevel = nil
	store := newFakeLeaveStore(record)
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, teacherClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceDecideLostRaceSurfacesConflict(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	store.updateErr = appErrors.Clone(appErrors.ErrConflict, "leave request was decided concurrently")
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Decide(context.Background(), "leave-1", dto.DecideLeaveRequest{Action: dto.DecisionApprove}, teacherClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestLeaveServiceReapplyChainsToOriginal(t *testing.T) {
	original := pendingAt(models.ApprovalRoleTeacher)
	original.Status = models.LeaveStatusRejected
	original.CurrentApprovalLevel = nil
	store := newFakeLeaveStore(original)
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	record, err := svc.Reapply(context.Background(), "leave-1", dto.ReapplyLeaveRequest{
		Category: models.LeaveCategorySick,
		FromDate: "2024-03-10",
		ToDate:   "2024-03-11",
		Reason:   "Fever, doctor note attached",
	}, studentClaims())
	require.NoError(t, err)

	assert.True(t, record.IsReapply)
	require.NotNil(t, record.OriginalRequestID)
	assert.Equal(t, "leave-1", *record.OriginalRequestID)
	assert.Equal(t, models.LeaveStatusPending, record.Status)
	require.NotNil(t, record.CurrentApprovalLevel)
	assert.Equal(t, models.ApprovalRoleTeacher, *record.CurrentApprovalLevel)
	require.NotNil(t, record.ReapplyReason)
	assert.Equal(t, defaultReapplyReason, *record.ReapplyReason)

	// The original is never mutated.
	stored, getErr := store.GetByID(context.Background(), "leave-1")
	require.NoError(t, getErr)
	assert.Equal(t, models.LeaveStatusRejected, stored.Status)
	assert.False(t, stored.IsReapply)
}

func TestLeaveServiceReapplyKeepsExplanation(t *testing.T) {
	original := pendingAt(models.ApprovalRoleTeacher)
	original.Status = models.LeaveStatusReturned
	store := newFakeLeaveStore(original)
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	record, err := svc.Reapply(context.Background(), "leave-1", dto.ReapplyLeaveRequest{
		Category:      models.LeaveCategorySick,
		FromDate:      "2024-03-10",
		ToDate:        "2024-03-11",
		Reason:        "Fever",
		ReapplyReason: "Added medical certificate",
	}, studentClaims())
	require.NoError(t, err)
	require.NotNil(t, record.ReapplyReason)
	assert.Equal(t, "Added medical certificate", *record.ReapplyReason)
}

func TestLeaveServiceReapplyRequiresTerminalOriginal(t *testing.T) {
	store := newFakeLeaveStore(pendingAt(models.ApprovalRoleTeacher))
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Reapply(context.Background(), "leave-1", dto.ReapplyLeaveRequest{
		Category: models.LeaveCategorySick,
		FromDate: "2024-03-10",
		ToDate:   "2024-03-11",
		Reason:   "Fever",
	}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.created)
}

func TestLeaveServiceReapplyOfApprovedRefused(t *testing.T) {
	original := pendingAt(models.ApprovalRoleTeacher)
	original.Status = models.LeaveStatusApproved
	original.CurrentApprovalLevel = nil
	store := newFakeLeaveStore(original)
	svc := NewLeaveService(LeaveServiceParams{Store: store})

	_, err := svc.Reapply(context.Background(), "leave-1", dto.ReapplyLeaveRequest{
		Category: models.LeaveCategorySick,
		FromDate: "2024-03-10",
		ToDate:   "2024-03-11",
		Reason:   "Fever",
	}, studentClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}
