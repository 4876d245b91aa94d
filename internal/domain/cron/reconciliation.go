package cron

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vitalcycle/backend/internal/common"
	"github.com/vitalcycle/backend/internal/domain"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
)

// DailyReconciliationCronJob recomputes yesterday and today for every user
// with a current cycle. It repairs days whose scoring failed when the habit
// was logged, and moves expired cycles to PENDING_RENEWAL.
type DailyReconciliationCronJob struct {
	cycleRepo          repository.CycleRepository
	gamificationDomain domain.GamificationDomain

	clock   dateutil.Clock
	loc     *time.Location
	hour    int
	workers int
}

func NewDailyReconciliationCronJob(
	cycleRepo repository.CycleRepository,
	gamificationDomain domain.GamificationDomain,
	clock dateutil.Clock,
	loc *time.Location,
	hour int,
	workers int,
) *DailyReconciliationCronJob {
	if workers < 1 {
		workers = 1
	}

	return &DailyReconciliationCronJob{
		cycleRepo:          cycleRepo,
		gamificationDomain: gamificationDomain,
		clock:              clock,
		loc:                loc,
		hour:               hour,
		workers:            workers,
	}
}

func (job *DailyReconciliationCronJob) Do(ctx context.Context) {
	start := time.Now()

	userIDs, err := job.cycleRepo.GetUserIDsByStatus(ctx, entity.CurrentCycleStatuses...)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users with a current cycle: %v", err)
		common.PromHistograms[common.ReconcileDurationSeconds].
			WithLabelValues("failure").Observe(time.Since(start).Seconds())
		return
	}

	today := dateutil.Today(job.clock, job.loc)
	dates := []string{
		dateutil.FormatDate(dateutil.AddDays(today, -1)),
		dateutil.FormatDate(today),
	}

	var failed int64
	g := errgroup.Group{}
	g.SetLimit(job.workers)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			for _, date := range dates {
				_, err := job.gamificationDomain.ProcessDailyGamification(ctx, &model.ProcessDailyGamificationRequest{
					UserID: userID,
					Date:   date,
					Source: model.SourceReconcile,
				})
				if err == nil {
					continue
				}

				// Yesterday may precede the first cycle of the user.
				if errorx.IsCode(err, errorx.NotFound) {
					continue
				}

				atomic.AddInt64(&failed, 1)
				xcontext.Logger(ctx).Warnf("Cannot reconcile user %s on %s: %v", userID, date, err)
			}

			return nil
		})
	}

	// Workers never return errors, failures are only counted.
	_ = g.Wait()

	status := "success"
	if failed > 0 {
		status = "failure"
	}
	common.PromHistograms[common.ReconcileDurationSeconds].
		WithLabelValues(status).Observe(time.Since(start).Seconds())

	xcontext.Logger(ctx).Infof("Reconciled %d users, %d failures", len(userIDs), failed)
}

func (job *DailyReconciliationCronJob) RunNow() bool {
	return false
}

func (job *DailyReconciliationCronJob) Next() time.Time {
	return dateutil.NextAt(job.clock.Now(), job.hour, job.loc)
}
