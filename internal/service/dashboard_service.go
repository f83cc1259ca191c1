package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
)

type queueProvider interface {
	Queue(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope) ([]models.LeaveRecord, error)
}

type rosterSource interface {
	ListRoster(ctx context.Context, scope models.ClassScope) ([]string, error)
}

type presenceCalculator interface {
	PartitionRoster(records []models.LeaveRecord, roster []string, date time.Time) models.RosterPartition
	Stats(records []models.LeaveRecord, roster []string, now time.Time) models.LeaveStats
}

// DashboardService composes the reconciled queue with derived attendance
// counts for approver dashboards.
type DashboardService struct {
	queue    queueProvider
	roster   rosterSource
	presence presenceCalculator
	cache    *CacheService
	logger   *zap.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Queue    queueProvider
	Roster   rosterSource
	Presence presenceCalculator
	Cache    *CacheService
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		queue:    params.Queue,
		roster:   params.Roster,
		presence: params.Presence,
		cache:    params.Cache,
		logger:   logger,
		now:      time.Now,
		cacheTTL: ttl,
	}
}

// Approver builds the dashboard payload for an approver's selected scope and
// reports whether the cache served it.
func (s *DashboardService) Approver(ctx context.Context, approver models.ApproverIdentity, scope models.ClassScope) (*dto.LeaveDashboardResponse, bool, error) {
	now := s.now()
	cacheKey := fmt.Sprintf("dash:leave:%s:%s:%s:%s", approver.ID, scope.Year, scope.Division, now.Format("2006-01-02"))
	if s.cache != nil {
		var cached dto.LeaveDashboardResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	records, err := s.queue.Queue(ctx, approver, scope)
	if err != nil {
		return nil, false, err
	}

	var roster []string
	if s.roster != nil {
		roster, err = s.roster.ListRoster(ctx, scope)
		if err != nil {
			s.logger.Warn("roster fetch failed, stats will omit roster size", zap.Error(err))
			roster = nil
		}
	}
	if len(roster) == 0 {
		roster = distinctRequesters(records)
	}

	payload := &dto.LeaveDashboardResponse{
		Stats:     s.presence.Stats(records, roster, now),
		Partition: s.presence.PartitionRoster(records, roster, now),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return payload, false, nil
}

func distinctRequesters(records []models.LeaveRecord) []string {
	seen := make(map[string]struct{}, len(records))
	ids := make([]string, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.RequesterID]; ok {
			continue
		}
		seen[record.RequesterID] = struct{}{}
		ids = append(ids, record.RequesterID)
	}
	sort.Strings(ids)
	return ids
}
