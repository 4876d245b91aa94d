package cron

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/testutil"
)

type countingJob struct {
	runs chan struct{}
}

func (job *countingJob) Do(context.Context) { job.runs <- struct{}{} }
func (job *countingJob) RunNow() bool       { return true }
func (job *countingJob) Next() time.Time    { return time.Now().Add(10 * time.Millisecond) }

func TestCronJobManager(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.MockContext())
	defer cancel()

	job := &countingJob{runs: make(chan struct{}, 100)}
	manager := NewCronJobManager()
	manager.Register(job)

	stopped := make(chan struct{})
	go func() {
		manager.Start(ctx)
		close(stopped)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-job.runs:
		case <-time.After(time.Second):
			require.FailNow(t, "job was not run again")
		}
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		require.FailNow(t, "manager did not stop")
	}
}

type fakeGamificationDomain struct {
	mu       sync.Mutex
	requests []model.ProcessDailyGamificationRequest

	errs map[string]error
}

func (d *fakeGamificationDomain) ProcessDailyGamification(
	ctx context.Context, req *model.ProcessDailyGamificationRequest,
) (*model.ProcessDailyGamificationResponse, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.requests = append(d.requests, *req)
	return &model.ProcessDailyGamificationResponse{}, d.errs[req.UserID]
}

func (d *fakeGamificationDomain) RecordHabitCompletion(
	context.Context, *model.RecordHabitCompletionRequest,
) (*model.RecordHabitCompletionResponse, error) {
	return nil, errorx.Unknown
}

func (d *fakeGamificationDomain) GetUserProgress(
	context.Context, *model.GetUserProgressRequest,
) (*model.GetUserProgressResponse, error) {
	return nil, errorx.Unknown
}

func (d *fakeGamificationDomain) CheckNewMedals(
	context.Context, *model.CheckNewMedalsRequest,
) (*model.CheckNewMedalsResponse, error) {
	return nil, errorx.Unknown
}

func (d *fakeGamificationDomain) GetDailyPoints(
	context.Context, *model.GetDailyPointsRequest,
) (*model.GetDailyPointsResponse, error) {
	return nil, errorx.Unknown
}

func TestDailyReconciliationCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	testutil.CreateCycle(ctx, "user1", 1, start, entity.CycleActive)
	testutil.CreateCycle(ctx, "user2", 1, start.AddDate(0, 0, -40), entity.CyclePendingRenewal)
	testutil.CreateCycle(ctx, "user3", 1, start.AddDate(0, 0, -40), entity.CycleCompleted)
	testutil.CreateCycle(ctx, "user4", 1, start, entity.CycleExpired)
	testutil.CreateCycle(ctx, "user5", 1, start, entity.CycleActive)

	gamification := &fakeGamificationDomain{errs: map[string]error{
		"user5": errorx.New(errorx.NotFound, "No cycle"),
	}}
	clock := &dateutil.FixedClock{T: start.Add(time.Hour)}
	job := NewDailyReconciliationCronJob(
		repository.NewCycleRepository(), gamification, clock, time.UTC, 2, 2)

	require.False(t, job.RunNow())
	require.Equal(t, time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC), job.Next())

	job.Do(ctx)

	got := []string{}
	for _, req := range gamification.requests {
		require.Equal(t, model.SourceReconcile, req.Source)
		got = append(got, req.UserID+"@"+req.Date)
	}
	sort.Strings(got)

	require.Equal(t, []string{
		"user1@2024-02-29",
		"user1@2024-03-01",
		"user2@2024-02-29",
		"user2@2024-03-01",
		"user5@2024-02-29",
		"user5@2024-03-01",
	}, got)
}
