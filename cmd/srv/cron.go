package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/internal/domain/cron"
	"github.com/vitalcycle/backend/migration"
	"github.com/vitalcycle/backend/pkg/prometheus"
	"github.com/vitalcycle/backend/pkg/xcontext"
)

func (s *srv) startCron(cctx *cli.Context) error {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		return err
	}

	if err := s.loadDomains(); err != nil {
		return err
	}

	cfg := xcontext.Configs(s.ctx)
	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricServer := &http.Server{
		Addr:    cfg.Metrics.Address(),
		Handler: prometheus.NewHandler(),
	}
	go func() {
		xcontext.Logger(ctx).Infof("Serving metrics on %s", metricServer.Addr)
		if err := metricServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			xcontext.Logger(ctx).Errorf("Cannot serve metrics: %v", err)
			stop()
		}
	}()

	reconciliation := cron.NewDailyReconciliationCronJob(
		s.cycleRepo,
		s.gamificationDomain,
		s.clock,
		s.loc,
		cfg.Gamification.ReconcileHour,
		cfg.Gamification.ReconcileWorkers,
	)

	if cctx.Bool("now") {
		reconciliation.Do(ctx)
	}

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(reconciliation)
	cronJobManager.Start(ctx)

	return metricServer.Shutdown(context.Background())
}
