package domain

import (
	"context"

	"github.com/vitalcycle/backend/internal/common"
	"github.com/vitalcycle/backend/internal/domain/lifecycle"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/lock"
	"github.com/vitalcycle/backend/pkg/pubsub"
)

type CycleDomain interface {
	GetCurrentCycle(context.Context, *model.GetCurrentCycleRequest) (*model.GetCurrentCycleResponse, error)
	NeedsNewCycle(context.Context, *model.NeedsNewCycleRequest) (*model.NeedsNewCycleResponse, error)
	CreateNewCycle(context.Context, *model.CreateNewCycleRequest) (*model.CreateNewCycleResponse, error)
	GetCycleStatus(context.Context, *model.GetCycleStatusRequest) (*model.GetCycleStatusResponse, error)
	ExpireCycle(context.Context, *model.ExpireCycleRequest) (*model.ExpireCycleResponse, error)
	CompleteCycleOnboarding(context.Context, *model.CompleteCycleOnboardingRequest) (*model.CompleteCycleOnboardingResponse, error)
	MarkCycleOnboardingComplete(context.Context, *model.MarkCycleOnboardingCompleteRequest) (*model.MarkCycleOnboardingCompleteResponse, error)
}

type cycleDomain struct {
	lifecycle *lifecycle.Manager
	locker    lock.Locker
	publisher pubsub.Publisher
}

func NewCycleDomain(
	cycleManager *lifecycle.Manager,
	locker lock.Locker,
	publisher pubsub.Publisher,
) *cycleDomain {
	return &cycleDomain{
		lifecycle: cycleManager,
		locker:    locker,
		publisher: publisher,
	}
}

func (d *cycleDomain) GetCurrentCycle(
	ctx context.Context, req *model.GetCurrentCycleRequest,
) (*model.GetCurrentCycleResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	var cycle *entity.Cycle
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.GetCurrentCycle(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.GetCurrentCycleResponse{Cycle: model.ConvertOptionalCycle(cycle)}, nil
}

func (d *cycleDomain) NeedsNewCycle(
	ctx context.Context, req *model.NeedsNewCycleRequest,
) (*model.NeedsNewCycleResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	var needs bool
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		needs, err = d.lifecycle.NeedsNewCycle(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.NeedsNewCycleResponse{NeedsNewCycle: needs}, nil
}

// CreateNewCycle checks and creates under the user lock, so two concurrent
// renewals cannot both succeed.
func (d *cycleDomain) CreateNewCycle(
	ctx context.Context, req *model.CreateNewCycleRequest,
) (*model.CreateNewCycleResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if req.CycleNumber < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid cycle number")
	}

	var cycle *entity.Cycle
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.CreateCycle(ctx, req.UserID, req.CycleNumber)
		return err
	})
	if err != nil {
		return nil, err
	}

	common.PromCounters[common.CyclesCreatedTotal].WithLabelValues().Inc()
	publishEvent(ctx, d.publisher, model.CycleCreatedTopic, cycle.UserID, model.CycleCreatedEvent{
		ID:          newEventID(ctx),
		UserID:      cycle.UserID,
		CycleID:     cycle.ID,
		CycleNumber: cycle.CycleNumber,
		StartAt:     cycle.StartAt.Format(model.DefaultTimeLayout),
	})

	return &model.CreateNewCycleResponse{Cycle: model.ConvertCycle(cycle)}, nil
}

func (d *cycleDomain) GetCycleStatus(
	ctx context.Context, req *model.GetCycleStatusRequest,
) (*model.GetCycleStatusResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	var cycle *entity.Cycle
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.GetCurrentCycle(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if cycle == nil {
		return &model.GetCycleStatusResponse{NeedsNewCycle: true}, nil
	}

	return &model.GetCycleStatusResponse{
		Cycle:         model.ConvertOptionalCycle(cycle),
		DaysElapsed:   d.lifecycle.DaysElapsed(cycle),
		DaysRemaining: d.lifecycle.DaysRemaining(cycle),
		NeedsNewCycle: cycle.Status != entity.CycleActive,
	}, nil
}

func (d *cycleDomain) ExpireCycle(
	ctx context.Context, req *model.ExpireCycleRequest,
) (*model.ExpireCycleResponse, error) {
	cycle, err := d.lifecycle.GetCycle(ctx, req.CycleID)
	if err != nil {
		return nil, err
	}

	err = withUserTransaction(ctx, d.locker, cycle.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.Expire(ctx, req.CycleID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.ExpireCycleResponse{Cycle: model.ConvertCycle(cycle)}, nil
}

func (d *cycleDomain) CompleteCycleOnboarding(
	ctx context.Context, req *model.CompleteCycleOnboardingRequest,
) (*model.CompleteCycleOnboardingResponse, error) {
	cycle, err := d.lifecycle.GetCycle(ctx, req.CycleID)
	if err != nil {
		return nil, err
	}

	err = withUserTransaction(ctx, d.locker, cycle.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.CompleteOnboarding(ctx, req.CycleID, req.Scores, req.Phenotype, req.ProgramID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.CompleteCycleOnboardingResponse{Cycle: model.ConvertCycle(cycle)}, nil
}

func (d *cycleDomain) MarkCycleOnboardingComplete(
	ctx context.Context, req *model.MarkCycleOnboardingCompleteRequest,
) (*model.MarkCycleOnboardingCompleteResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	var cycle *entity.Cycle
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		cycle, err = d.lifecycle.MarkOnboardingComplete(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.MarkCycleOnboardingCompleteResponse{Cycle: model.ConvertOptionalCycle(cycle)}, nil
}
