package main

import (
	"github.com/urfave/cli/v2"
	"github.com/vitalcycle/backend/internal/model"
)

func (s *srv) startCycleNew(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.cycleDomain.CreateNewCycle(s.ctx, &model.CreateNewCycleRequest{
		UserID:      cctx.String("user"),
		CycleNumber: cctx.Int("number"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startCycleStatus(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.cycleDomain.GetCycleStatus(s.ctx, &model.GetCycleStatusRequest{
		UserID: cctx.String("user"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startCycleExpire(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.cycleDomain.ExpireCycle(s.ctx, &model.ExpireCycleRequest{
		CycleID: cctx.String("id"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}

func (s *srv) startCycleOnboarding(cctx *cli.Context) error {
	if err := s.loadDomains(); err != nil {
		return err
	}

	resp, err := s.cycleDomain.MarkCycleOnboardingComplete(s.ctx, &model.MarkCycleOnboardingCompleteRequest{
		UserID: cctx.String("user"),
	})
	if err != nil {
		return err
	}

	return printJSON(resp)
}
