package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type requesterSource interface {
	ListByRequester(ctx context.Context, userID string) ([]models.LeaveRecord, error)
}

type refreshRecorder interface {
	RecordRefreshCycle(outcome string)
}

// RefreshScheduler re-runs the fetch pipeline for a requester session on a
// fixed cadence so approver-side decisions become visible without a manual
// reload. A per-fetch timeout guard converts a stalled store into a visible
// timeout snapshot instead of an indefinite wait.
//
// Fetches may overlap when the store is slow; each one is independent and
// the consumer keeps the latest completed snapshot.
type RefreshScheduler struct {
	source   requesterSource
	interval time.Duration
	timeout  time.Duration
	metrics  refreshRecorder
	logger   *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// RefreshSchedulerParams groups constructor dependencies.
type RefreshSchedulerParams struct {
	Source   requesterSource
	Interval time.Duration
	Timeout  time.Duration
	Metrics  refreshRecorder
	Logger   *zap.Logger
}

// NewRefreshScheduler constructs a RefreshScheduler with sane defaults.
func NewRefreshScheduler(params RefreshSchedulerParams) *RefreshScheduler {
	interval := params.Interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshScheduler{
		source:   params.Source,
		interval: interval,
		timeout:  timeout,
		metrics:  params.Metrics,
		logger:   logger,
	}
}

// Start launches the polling loop for a requester session. Each completed
// fetch is delivered to the consumer callback. The loop stops when ctx is
// cancelled or Stop is called.
func (s *RefreshScheduler) Start(ctx context.Context, userID string, deliver func(dto.LeaveSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.run(ctx, userID, deliver)
}

// Stop cancels the recurring refresh and waits for in-flight fetches.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *RefreshScheduler) run(ctx context.Context, userID string, deliver func(dto.LeaveSnapshot)) {
	defer s.wg.Done()

	// Initial fetch before the first tick.
	s.launchFetch(ctx, userID, deliver)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.launchFetch(ctx, userID, deliver)
		case <-ctx.Done():
			return
		}
	}
}

func (s *RefreshScheduler) launchFetch(ctx context.Context, userID string, deliver func(dto.LeaveSnapshot)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		deliver(s.fetchOnce(ctx, userID))
	}()
}

// fetchOnce runs one fetch attempt under the timeout guard. The guard fires
// at most once per attempt and is disarmed as soon as the fetch completes; a
// late result arriving after the guard fired is discarded.
func (s *RefreshScheduler) fetchOnce(ctx context.Context, userID string) dto.LeaveSnapshot {
	type result struct {
		records []models.LeaveRecord
		err     error
	}
	done := make(chan result, 1)

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		records, err := s.source.ListByRequester(fetchCtx, userID)
		done <- result{records: records, err: err}
	}()

	guard := time.NewTimer(s.timeout)
	defer guard.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			s.count("error")
			s.logger.Warn("refresh fetch failed", zap.String("user", userID), zap.Error(res.err))
			return dto.LeaveSnapshot{FetchedAt: time.Now().UTC(), Err: appErrors.Wrap(res.err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, appErrors.ErrSourceUnavailable.Message)}
		}
		s.count("ok")
		return dto.LeaveSnapshot{Records: res.records, FetchedAt: time.Now().UTC()}
	case <-guard.C:
		s.count("timeout")
		s.logger.Warn("refresh fetch timed out", zap.String("user", userID), zap.Duration("timeout", s.timeout))
		return dto.LeaveSnapshot{FetchedAt: time.Now().UTC(), Err: appErrors.ErrTimeout}
	case <-ctx.Done():
		s.count("cancelled")
		return dto.LeaveSnapshot{FetchedAt: time.Now().UTC(), Err: ctx.Err()}
	}
}

func (s *RefreshScheduler) count(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordRefreshCycle(outcome)
	}
}
