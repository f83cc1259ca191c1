package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	"github.com/noah-isme/campus-ops-api/internal/repository"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type leaveStore interface {
	GetByID(ctx context.Context, id string) (*models.LeaveRecord, error)
	ListByRequester(ctx context.Context, userID string) ([]models.LeaveRecord, error)
	Create(ctx context.Context, record *models.LeaveRecord) (*models.LeaveRecord, error)
	UpdateStatus(ctx context.Context, id string, mutation repository.StatusMutation, expectedLevel models.ApprovalRole) error
}

type userDirectory interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type decisionRecorder interface {
	RecordLeaveDecision(action string, outcome string)
}

const defaultReapplyReason = "Resubmitted after rejection"

const dateLayout = "2006-01-02"

// LeaveService owns the leave-request lifecycle: submission, the approval
// state machine, and the reapplication workflow.
type LeaveService struct {
	store     leaveStore
	directory userDirectory
	metrics   decisionRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// LeaveServiceParams groups constructor dependencies.
type LeaveServiceParams struct {
	Store     leaveStore
	Directory userDirectory
	Metrics   decisionRecorder
	Logger    *zap.Logger
}

// NewLeaveService constructs a LeaveService.
func NewLeaveService(params LeaveServiceParams) *LeaveService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeaveService{
		store:     params.Store,
		directory: params.Directory,
		metrics:   params.Metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates and persists a fresh leave request. The approval flow is
// fixed here and never changes for the lifetime of the record.
func (s *LeaveService) Submit(ctx context.Context, req dto.SubmitLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	from, to, err := validateRequestBody(req.Category, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		return nil, err
	}

	record := s.newRecord(ctx, actor, req.Category, from, to, req.Reason, req.AssignedTo)
	stored, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave request submitted",
		zap.String("id", stored.ID),
		zap.String("requester", stored.RequesterID),
		zap.Int("days", stored.DaysCount))
	return stored, nil
}

// MyRequests lists the acting user's own leave requests.
func (s *LeaveService) MyRequests(ctx context.Context, actor *models.JWTClaims) ([]models.LeaveRecord, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	return s.store.ListByRequester(ctx, actor.UserID)
}

// Decide applies an approval decision to a pending request. Eligibility: the
// record must be pending and the actor's role must equal the current
// approval level. Anything else refuses the transition and leaves the record
// unchanged.
func (s *LeaveService) Decide(ctx context.Context, id string, req dto.DecideLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !req.Action.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown decision action %q", req.Action))
	}
	actingRole, ok := actor.Role.ApproverRole()
	if !ok {
		s.countDecision(req.Action, "forbidden")
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role holds no approval authority")
	}

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != models.LeaveStatusPending {
		s.countDecision(req.Action, "not_pending")
		return nil, appErrors.ErrInvalidTransition
	}
	if !record.AtLevel(actingRole) {
		s.countDecision(req.Action, "wrong_level")
		return nil, appErrors.Clone(appErrors.ErrForbidden, "request awaits a different approval level")
	}

	mutation, err := s.buildMutation(record, req, actingRole, actor)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateStatus(ctx, record.ID, mutation, actingRole); err != nil {
		s.countDecision(req.Action, "conflict")
		return nil, err
	}
	s.countDecision(req.Action, "ok")
	s.logger.Info("leave request decided",
		zap.String("id", record.ID),
		zap.String("action", string(req.Action)),
		zap.String("actor", actor.UserID),
		zap.String("level", string(actingRole)))

	return s.store.GetByID(ctx, record.ID)
}

// Reapply creates a fresh pending request derived from a rejected or
// returned one. The original record is never mutated; history is preserved
// by chaining.
func (s *LeaveService) Reapply(ctx context.Context, originalID string, req dto.ReapplyLeaveRequest, actor *models.JWTClaims) (*models.LeaveRecord, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	original, err := s.store.GetByID(ctx, originalID)
	if err != nil {
		return nil, err
	}
	if !original.Status.ReapplyEligible() {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "only rejected or returned requests can be reapplied")
	}
	from, to, err := validateRequestBody(req.Category, req.FromDate, req.ToDate, req.Reason)
	if err != nil {
		return nil, err
	}

	// Owner fields come from the acting user, not the stale original, so
	// profile changes since the first submission carry over.
	record := s.newRecord(ctx, actor, req.Category, from, to, req.Reason, req.AssignedTo)
	record.IsReapply = true
	record.OriginalRequestID = &original.ID
	reason := req.ReapplyReason
	if reason == "" {
		reason = defaultReapplyReason
	}
	record.ReapplyReason = &reason

	stored, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave request reapplied",
		zap.String("id", stored.ID),
		zap.String("original_id", original.ID),
		zap.String("requester", stored.RequesterID))
	return stored, nil
}

func (s *LeaveService) newRecord(ctx context.Context, actor *models.JWTClaims, category models.LeaveCategory, from, to time.Time, reason, assignedTo string) *models.LeaveRecord {
	flow := models.DefaultApprovalFlow()
	first := flow[0]
	record := &models.LeaveRecord{
		RequesterID:          actor.UserID,
		RequesterName:        actor.FullName,
		Department:           actor.Department,
		Category:             category,
		FromDate:             from,
		ToDate:               to,
		DaysCount:            models.InclusiveDays(from, to),
		Reason:               reason,
		Status:               models.LeaveStatusPending,
		SubmittedAt:          s.now().UTC(),
		ApprovalFlow:         flow,
		CurrentApprovalLevel: &first,
	}
	if assignedTo != "" {
		record.AssignedTo = &assignedTo
	}
	if s.directory != nil {
		if profile, err := s.directory.FindByID(ctx, actor.UserID); err == nil && profile != nil {
			record.RollNumber = profile.RollNumber
			record.Class = profile.Class
			record.Year = profile.Year
			record.Section = profile.Section
			if record.Department == "" {
				record.Department = profile.Department
			}
		}
	}
	return record
}

func (s *LeaveService) buildMutation(record *models.LeaveRecord, req dto.DecideLeaveRequest, actingRole models.ApprovalRole, actor *models.JWTClaims) (repository.StatusMutation, error) {
	switch req.Action {
	case dto.DecisionApprove:
		if record.ApprovalFlow.Last(actingRole) {
			now := s.now().UTC()
			approvedBy := actor.UserID
			return repository.StatusMutation{
				Status:     models.LeaveStatusApproved,
				ApprovedBy: &approvedBy,
				ApprovedAt: &now,
			}, nil
		}
		next := record.NextLevel()
		if next == nil {
			return repository.StatusMutation{}, appErrors.Clone(appErrors.ErrInternal, "approval flow has no next level")
		}
		return repository.StatusMutation{
			Status:               models.LeaveStatusPending,
			CurrentApprovalLevel: next,
		}, nil
	case dto.DecisionReject:
		remarks := req.Remarks
		return repository.StatusMutation{
			Status:  models.LeaveStatusRejected,
			Remarks: &remarks,
		}, nil
	case dto.DecisionReturn:
		remarks := req.Remarks
		return repository.StatusMutation{
			Status:  models.LeaveStatusReturned,
			Remarks: &remarks,
		}, nil
	default:
		return repository.StatusMutation{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown decision action %q", req.Action))
	}
}

func (s *LeaveService) countDecision(action dto.DecisionAction, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLeaveDecision(string(action), outcome)
	}
}

func validateRequestBody(category models.LeaveCategory, fromRaw, toRaw, reason string) (time.Time, time.Time, error) {
	if !category.Valid() {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown leave category %q", category))
	}
	if reason == "" {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "reason is required")
	}
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from_date must be YYYY-MM-DD")
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to_date must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}
	return from, to, nil
}
