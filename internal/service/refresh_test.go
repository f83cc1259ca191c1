package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-ops-api/internal/dto"
	"github.com/noah-isme/campus-ops-api/internal/models"
	appErrors "github.com/noah-isme/campus-ops-api/pkg/errors"
)

type fakeRequesterSource struct {
	records []models.LeaveRecord
	delay   time.Duration
	calls   atomic.Int64
}

func (f *fakeRequesterSource) ListByRequester(ctx context.Context, _ string) ([]models.LeaveRecord, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.records, nil
}

func collectSnapshot(t *testing.T, snapshots <-chan dto.LeaveSnapshot) dto.LeaveSnapshot {
	t.Helper()
	select {
	case snap := <-snapshots:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return dto.LeaveSnapshot{}
	}
}

func TestRefreshSchedulerDeliversSnapshots(t *testing.T) {
	source := &fakeRequesterSource{records: []models.LeaveRecord{{ID: "leave-1", RequesterID: "stu-1"}}}
	scheduler := NewRefreshScheduler(RefreshSchedulerParams{
		Source:   source,
		Interval: 10 * time.Millisecond,
		Timeout:  time.Second,
	})

	snapshots := make(chan dto.LeaveSnapshot, 8)
	scheduler.Start(context.Background(), "stu-1", func(snap dto.LeaveSnapshot) {
		snapshots <- snap
	})
	defer scheduler.Stop()

	first := collectSnapshot(t, snapshots)
	require.NoError(t, first.Err)
	require.Len(t, first.Records, 1)
	assert.Equal(t, "leave-1", first.Records[0].ID)
	assert.False(t, first.FetchedAt.IsZero())

	// The ticker keeps re-fetching.
	second := collectSnapshot(t, snapshots)
	require.NoError(t, second.Err)
	assert.GreaterOrEqual(t, source.calls.Load(), int64(2))
}

func TestRefreshSchedulerTimeoutGuard(t *testing.T) {
	source := &fakeRequesterSource{delay: time.Second}
	scheduler := NewRefreshScheduler(RefreshSchedulerParams{
		Source:   source,
		Interval: time.Minute,
		Timeout:  20 * time.Millisecond,
	})

	snapshots := make(chan dto.LeaveSnapshot, 1)
	scheduler.Start(context.Background(), "stu-1", func(snap dto.LeaveSnapshot) {
		select {
		case snapshots <- snap:
		default:
		}
	})

	snap := collectSnapshot(t, snapshots)
	require.Error(t, snap.Err)
	assert.Equal(t, appErrors.ErrTimeout.Code, appErrors.FromError(snap.Err).Code)
	assert.Empty(t, snap.Records)
	scheduler.Stop()
}

func TestRefreshSchedulerStopHaltsFetches(t *testing.T) {
	source := &fakeRequesterSource{}
	scheduler := NewRefreshScheduler(RefreshSchedulerParams{
		Source:   source,
		Interval: 5 * time.Millisecond,
		Timeout:  time.Second,
	})

	snapshots := make(chan dto.LeaveSnapshot, 64)
	scheduler.Start(context.Background(), "stu-1", func(snap dto.LeaveSnapshot) {
		select {
		case snapshots <- snap:
		default:
		}
	})

	collectSnapshot(t, snapshots)
	scheduler.Stop()

	settled := source.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, source.calls.Load())
}

func TestRefreshSchedulerContextCancel(t *testing.T) {
	source := &fakeRequesterSource{}
	scheduler := NewRefreshScheduler(RefreshSchedulerParams{
		Source:   source,
		Interval: 5 * time.Millisecond,
		Timeout:  time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	snapshots := make(chan dto.LeaveSnapshot, 64)
	scheduler.Start(ctx, "stu-1", func(snap dto.LeaveSnapshot) {
		select {
		case snapshots <- snap:
		default:
		}
	})

	collectSnapshot(t, snapshots)
	cancel()
	scheduler.Stop()

	settled := source.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, source.calls.Load())
}
