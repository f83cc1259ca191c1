package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type stubCacheRepo struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = make(map[string][]byte)
	}
	s.entries[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(context.Context, string) error {
	s.entries = nil
	return nil
}

type fakeQueue struct {
	records []models.LeaveRecord
	err     error
	calls   int
}

func (f *fakeQueue) Queue(context.Context, models.ApproverIdentity, models.ClassScope) ([]models.LeaveRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

type fakeRoster struct {
	ids []string
	err error
}

func (f *fakeRoster) ListRoster(context.Context, models.ClassScope) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

func TestDashboardApproverComposesAndCaches(t *testing.T) {
	cacheRepo := &stubCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)

	day := models.DateOnly(time.Now().UTC())
	queue := &fakeQueue{records: []models.LeaveRecord{
		{
			ID:          "leave-1",
			RequesterID: "stu-1",
			Status:      models.LeaveStatusApproved,
			FromDate:    day,
			ToDate:      day,
			SubmittedAt: time.Now().UTC(),
		},
	}}
	svc := NewDashboardService(DashboardServiceParams{
		Queue:    queue,
		Roster:   &fakeRoster{ids: []string{"stu-1", "stu-2"}},
		Presence: NewAttendanceService(),
		Cache:    cacheSvc,
		CacheTTL: time.Minute,
	})

	approver := models.ApproverIdentity{ID: "teach-1", Role: models.ApprovalRoleTeacher, Department: "CSE"}
	payload, cacheHit, err := svc.Approver(context.Background(), approver, models.ClassScope{})
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 2, payload.Stats.RosterSize)
	assert.Equal(t, 1, payload.Stats.OnLeaveToday)
	assert.ElementsMatch(t, []string{"stu-1"}, payload.Partition.Absent)
	assert.ElementsMatch(t, []string{"stu-2"}, payload.Partition.Present)

	// Second call served from cache, no extra queue fetch.
	cached, cacheHit, err := svc.Approver(context.Background(), approver, models.ClassScope{})
	require.NoError(t, err)
	assert.True(t, cacheHit)
	assert.Equal(t, payload.Stats, cached.Stats)
	assert.Equal(t, 1, queue.calls)
}

func TestDashboardApproverRosterFallsBackToRequesters(t *testing.T) {
	queue := &fakeQueue{records: []models.LeaveRecord{
		{ID: "leave-1", RequesterID: "stu-1", Status: models.LeaveStatusPending, SubmittedAt: time.Now().UTC()},
		{ID: "leave-2", RequesterID: "stu-2", Status: models.LeaveStatusPending, SubmittedAt: time.Now().UTC()},
		{ID: "leave-3", RequesterID: "stu-1", Status: models.LeaveStatusPending, SubmittedAt: time.Now().UTC()},
	}}
	svc := NewDashboardService(DashboardServiceParams{
		Queue:    queue,
		Roster:   &fakeRoster{err: errors.New("directory down")},
		Presence: NewAttendanceService(),
	})

	payload, _, err := svc.Approver(context.Background(), models.ApproverIdentity{ID: "teach-1"}, models.ClassScope{})
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Stats.RosterSize)
}

func TestDashboardApproverQueueErrorPropagates(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Queue:    &fakeQueue{err: errors.New("primary down")},
		Presence: NewAttendanceService(),
	})

	_, _, err := svc.Approver(context.Background(), models.ApproverIdentity{ID: "teach-1"}, models.ClassScope{})
	require.Error(t, err)
}
