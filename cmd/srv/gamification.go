package main

import (
	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/internal/model"
)

func (s *srv) startProcess(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.gamificationDomain.ProcessDailyGamification(s.ctx, &model.ProcessDailyGamificationRequest{
		UserID: cctx.String("user"),
		Date:   cctx.String("date"),
		Source: model.SourceManual,
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startRecord(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.gamificationDomain.RecordHabitCompletion(s.ctx, &model.RecordHabitCompletionRequest{
		UserID:          cctx.String("user"),
		HabitID:         cctx.String("habit"),
		Date:            cctx.String("date"),
		CompletionLevel: cctx.Int("level"),
		IsPromoted:      cctx.Bool("promoted"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startProgress(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.gamificationDomain.GetUserProgress(s.ctx, &model.GetUserProgressRequest{
		UserID: cctx.String("user"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startPoints(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.gamificationDomain.GetDailyPoints(s.ctx, &model.GetDailyPointsRequest{
		UserID: cctx.String("user"),
		Date:   cctx.String("date"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}
