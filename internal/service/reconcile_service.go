package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
)

type approverSource interface {
	ListByApprover(ctx context.Context, approver models.ApproverIdentity) ([]models.LeaveRecord, error)
}

type classScopeSource interface {
	ListByClassScope(ctx context.Context, scope models.ClassScope) ([]models.LeaveRecord, error)
}

// ReconcileServiceConfig tunes aggregator behaviour.
type ReconcileServiceConfig struct {
	// DemoFallback substitutes a deterministic placeholder dataset when the
	// filtered result is empty. Intended for unseeded demo environments;
	// off in production deployments.
	DemoFallback bool
}

// ReconcileService merges the approver-addressed record set with the
// class-scoped one into a single de-duplicated, visibility-filtered queue.
//
// The two sets are independently authored and overlap non-deterministically:
// a record may be explicitly assigned to an approver, discovered through the
// class hierarchy, both, or neither.
type ReconcileService struct {
	approverRecords approverSource
	classRecords    classScopeSource
	logger          *zap.Logger
	now             func() time.Time
	cfg             ReconcileServiceConfig
}

// ReconcileServiceParams groups constructor dependencies.
type ReconcileServiceParams struct {
	ApproverRecords approverSource
	ClassRecords    classScopeSource
	Logger          *zap.Logger
	Config          ReconcileServiceConfig
}

// NewReconcileService constructs a ReconcileService.
func NewReconcileService(params ReconcileServiceParams) *ReconcileService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconcileService{
		approverRecords: params.ApproverRecords,
		classRecords:    params.ClassRecords,
		logger:          logger,
		now:             time.Now,
		cfg:             params.Config,
	}
}

// Queue builds the approver's reconciled view for the selected scope.
//
// The approver-addressed set is authoritative: its fetch errors propagate,
// and its copy wins on id conflicts. The class-scoped set is best-effort
// supplementary data; a failure there contributes an empty set.
func (s *ReconcileService) Queue(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope) ([]models.LeaveRecord, error) {
	assigned, err := s.approverRecords.ListByApprover(ctx, approver)
	if err != nil {
		return nil, err
	}

	var scoped []models.LeaveRecord
	if s.classRecords != nil {
		scoped, err = s.classRecords.ListByClassScope(ctx, scope)
		if err != nil {
			s.logger.Warn("class scope fetch failed, continuing with assigned set only",
				zap.String("approver", approver.ID), zap.Error(err))
			scoped = nil
		}
	}

	merged := Merge(assigned, scoped)
	visible := FilterVisible(merged, approver)

	if len(visible) == 0 && s.cfg.DemoFallback {
		s.logger.Info("empty queue, serving demo dataset", zap.String("approver", approver.ID))
		return demoQueue(scope, s.now().UTC()), nil
	}
	return visible, nil
}

// Merge unions two record sets by id. Copies from the first set win on
// conflict; it is treated as authoritative for routing fields. The result is
// a set: Merge(a, a) = a, and Merge(a, b) equals Merge(b, a) up to order.
func Merge(primary, secondary []models.LeaveRecord) []models.LeaveRecord {
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	merged := make([]models.LeaveRecord, 0, len(primary)+len(secondary))
	for _, record := range primary {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		merged = append(merged, record)
	}
	for _, record := range secondary {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		merged = append(merged, record)
	}
	return merged
}

// FilterVisible keeps a record when it carries no department, when its
// department matches the approver's, or when it is explicitly assigned to
// the approver by id or email.
func FilterVisible(records []models.LeaveRecord, approver models.ApproverIdentity) []models.LeaveRecord {
	visible := make([]models.LeaveRecord, 0, len(records))
	for _, record := range records {
		if record.Department == "" ||
			strings.EqualFold(record.Department, approver.Department) ||
			assignedToApprover(record, approver) {
			visible = append(visible, record)
		}
	}
	return visible
}

func assignedToApprover(record models.LeaveRecord, approver models.ApproverIdentity) bool {
	if record.AssignedTo == nil {
		return false
	}
	return *record.AssignedTo == approver.ID || strings.EqualFold(*record.AssignedTo, approver.Email)
}

// demoQueue returns the deterministic placeholder dataset for an empty
// scope. Never used when the authoritative fetch errored.
func demoQueue(scope models.ClassScope, now time.Time) []models.LeaveRecord {
	level := models.ApprovalRoleTeacher
	from := models.DateOnly(now)
	to := from.AddDate(0, 0, 1)
	return []models.LeaveRecord{
		{
			ID:                   "demo-1",
			RequesterID:          "demo-student-1",
			RequesterName:        "Demo Student",
			Department:           scope.Department,
			Year:                 scope.Year,
			Section:              scope.Division,
			Category:             models.LeaveCategorySick,
			FromDate:             from,
			ToDate:               to,
			DaysCount:            models.InclusiveDays(from, to),
			Reason:               "Fever and rest advised",
			Status:               models.LeaveStatusPending,
			SubmittedAt:          now,
			ApprovalFlow:         models.DefaultApprovalFlow(),
			CurrentApprovalLevel: &level,
		},
	}
}
