package domain

import (
	"context"
	"errors"
	"time"

	"github.com/vitalcycle/backend/internal/common"
	"github.com/vitalcycle/backend/internal/domain/lifecycle"
	"github.com/vitalcycle/backend/internal/domain/medal"
	"github.com/vitalcycle/backend/internal/domain/progression"
	"github.com/vitalcycle/backend/internal/domain/scoring"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/model"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/lock"
	"github.com/vitalcycle/backend/pkg/pubsub"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GamificationDomain interface {
	ProcessDailyGamification(context.Context, *model.ProcessDailyGamificationRequest) (*model.ProcessDailyGamificationResponse, error)
	RecordHabitCompletion(context.Context, *model.RecordHabitCompletionRequest) (*model.RecordHabitCompletionResponse, error)
	GetUserProgress(context.Context, *model.GetUserProgressRequest) (*model.GetUserProgressResponse, error)
	CheckNewMedals(context.Context, *model.CheckNewMedalsRequest) (*model.CheckNewMedalsResponse, error)
	GetDailyPoints(context.Context, *model.GetDailyPointsRequest) (*model.GetDailyPointsResponse, error)
}

type gamificationDomain struct {
	habitRepo   repository.HabitCompletionRepository
	pointsRepo  repository.DailyPointsRepository
	awardedRepo repository.AwardedMedalRepository

	lifecycle    *lifecycle.Manager
	calculator   *scoring.Calculator
	tracker      *progression.Tracker
	medalManager *medal.Manager

	locker    lock.Locker
	publisher pubsub.Publisher
}

func NewGamificationDomain(
	habitRepo repository.HabitCompletionRepository,
	pointsRepo repository.DailyPointsRepository,
	awardedRepo repository.AwardedMedalRepository,
	cycleManager *lifecycle.Manager,
	calculator *scoring.Calculator,
	tracker *progression.Tracker,
	medalManager *medal.Manager,
	locker lock.Locker,
	publisher pubsub.Publisher,
) *gamificationDomain {
	return &gamificationDomain{
		habitRepo:    habitRepo,
		pointsRepo:   pointsRepo,
		awardedRepo:  awardedRepo,
		lifecycle:    cycleManager,
		calculator:   calculator,
		tracker:      tracker,
		medalManager: medalManager,
		locker:       locker,
		publisher:    publisher,
	}
}

// ProcessDailyGamification recomputes the points of one date, refreshes the
// level of the user and awards the medals which became reachable. It is safe
// to call again with the same input.
func (d *gamificationDomain) ProcessDailyGamification(
	ctx context.Context, req *model.ProcessDailyGamificationRequest,
) (*model.ProcessDailyGamificationResponse, error) {
	start := time.Now()

	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date, d.lifecycle.Today())
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = model.SourceManual
	}

	var points *entity.DailyPoints
	var progress *progression.Progress
	var newMedals []entity.AwardedMedal
	err = withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		cycle, err := d.lifecycle.GetCycleForDate(ctx, req.UserID, date)
		if err != nil {
			return err
		}

		points, err = d.calculator.Process(ctx, req.UserID, cycle.ID, date)
		if err != nil {
			return err
		}

		progress, err = d.tracker.UpdateLevelProgress(ctx, req.UserID)
		if err != nil {
			return err
		}

		newMedals, err = d.medalManager.CheckNewMedals(ctx, medal.State{
			UserID:    req.UserID,
			Cycle:     progress.Cycle,
			UserLevel: progress.UserLevel,
			Now:       d.lifecycle.Now(),
			Today:     d.lifecycle.Today(),
		})
		return err
	})
	if err != nil {
		common.PromHistograms[common.GamificationDurationSeconds].
			WithLabelValues("failure").Observe(time.Since(start).Seconds())
		return nil, err
	}

	common.PromHistograms[common.GamificationDurationSeconds].
		WithLabelValues("success").Observe(time.Since(start).Seconds())
	common.PromCounters[common.DailyPointsProcessedTotal].WithLabelValues(source).Inc()

	d.publishProgress(ctx, progress, newMedals)

	return &model.ProcessDailyGamificationResponse{
		DailyPoints:  model.ConvertDailyPoints(points),
		UserLevel:    model.ConvertUserLevel(progress.UserLevel),
		NewMedals:    model.ConvertAwardedMedals(newMedals),
		LevelChanged: progress.LevelChanged,
	}, nil
}

func (d *gamificationDomain) publishProgress(
	ctx context.Context, progress *progression.Progress, newMedals []entity.AwardedMedal,
) {
	now := d.lifecycle.Now().UTC().Format(model.DefaultTimeLayout)
	userLevel := progress.UserLevel

	if progress.LevelChanged {
		common.PromCounters[common.LevelUpsTotal].WithLabelValues(string(userLevel.CurrentLevel)).Inc()
		publishEvent(ctx, d.publisher, model.LevelUpTopic, userLevel.UserID, model.LevelUpEvent{
			ID:            newEventID(ctx),
			UserID:        userLevel.UserID,
			CycleID:       userLevel.CurrentCycleID.String,
			PreviousLevel: string(progress.PreviousLevel),
			Level:         string(userLevel.CurrentLevel),
			CyclePoints:   userLevel.CurrentCyclePoints,
			At:            now,
		})
	}

	for _, awarded := range newMedals {
		common.PromCounters[common.MedalsAwardedTotal].WithLabelValues(awarded.Medal.Name).Inc()
		publishEvent(ctx, d.publisher, model.MedalAwardedTopic, awarded.UserID, model.MedalAwardedEvent{
			ID:        newEventID(ctx),
			UserID:    awarded.UserID,
			MedalID:   awarded.MedalID,
			MedalName: awarded.Medal.Name,
			CycleID:   awarded.CycleEarnedID,
			Points:    awarded.PointsWhenEarned,
			Level:     string(awarded.LevelWhenEarned),
			At:        now,
		})
	}
}

// RecordHabitCompletion stores one habit log and then scores its date. A
// failing score never rejects the log, it is reported as a warning instead.
func (d *gamificationDomain) RecordHabitCompletion(
	ctx context.Context, req *model.RecordHabitCompletionRequest,
) (*model.RecordHabitCompletionResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	if req.HabitID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require habit id")
	}

	if req.CompletionLevel < entity.MinCompletionLevel || req.CompletionLevel > entity.MaxCompletionLevel {
		return nil, errorx.New(errorx.BadRequest, "Completion level must be between %d and %d",
			entity.MinCompletionLevel, entity.MaxCompletionLevel)
	}

	date, err := parseDate(req.Date, d.lifecycle.Today())
	if err != nil {
		return nil, err
	}

	err = withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		err := d.habitRepo.Upsert(ctx, &entity.HabitCompletion{
			UserID:          req.UserID,
			Date:            datatypes.Date(date),
			HabitID:         req.HabitID,
			CompletionLevel: req.CompletionLevel,
			IsPromoted:      req.IsPromoted,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot upsert habit completion: %v", err)
			return errorx.Unknown
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	resp, err := d.ProcessDailyGamification(ctx, &model.ProcessDailyGamificationRequest{
		UserID: req.UserID,
		Date:   dateutil.FormatDate(date),
		Source: model.SourceHabitLog,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot process gamification of user %s on %s: %v",
			req.UserID, dateutil.FormatDate(date), err)
		common.PromCounters[common.DegradedComputationsTotal].WithLabelValues().Inc()

		return &model.RecordHabitCompletionResponse{
			Warning: &model.Warning{Code: int(errorx.Degraded), Message: err.Error()},
		}, nil
	}

	return &model.RecordHabitCompletionResponse{Gamification: resp}, nil
}

func (d *gamificationDomain) GetUserProgress(
	ctx context.Context, req *model.GetUserProgressRequest,
) (*model.GetUserProgressResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	resp := &model.GetUserProgressResponse{CycleHistory: []model.DailyPoints{}}
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		userLevel, err := d.tracker.GetUserLevel(ctx, req.UserID)
		if err != nil {
			return err
		}
		resp.UserLevel = model.ConvertUserLevel(userLevel)

		cycle, err := d.lifecycle.GetCurrentCycle(ctx, req.UserID)
		if err != nil {
			return err
		}

		if cycle != nil {
			resp.CurrentCycle = model.ConvertOptionalCycle(cycle)
			resp.DaysElapsed = d.lifecycle.DaysElapsed(cycle)
			resp.DaysRemaining = d.lifecycle.DaysRemaining(cycle)

			history, err := d.pointsRepo.GetByCycleID(ctx, req.UserID, cycle.ID)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get cycle history: %v", err)
				return errorx.Unknown
			}

			for i := range history {
				resp.CycleHistory = append(resp.CycleHistory, model.ConvertDailyPoints(&history[i]))
			}
		}

		cycles, err := d.lifecycle.GetCycles(ctx, req.UserID)
		if err != nil {
			return err
		}

		resp.Cycles = []model.Cycle{}
		for i := range cycles {
			resp.Cycles = append(resp.Cycles, model.ConvertCycle(&cycles[i]))
		}

		awarded, err := d.awardedRepo.GetByUserID(ctx, req.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get awarded medals: %v", err)
			return errorx.Unknown
		}
		resp.AwardedMedals = model.ConvertAwardedMedals(awarded)

		// The response still carries the previous flags, so new awards are
		// reported as not notified exactly once.
		if err := d.awardedRepo.UpdateNotification(ctx, req.UserID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update notification of awarded medals: %v", err)
			return errorx.Unknown
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetDailyPoints returns the stored record of one date. A date without a
// record is reported with zero points.
func (d *gamificationDomain) GetDailyPoints(
	ctx context.Context, req *model.GetDailyPointsRequest,
) (*model.GetDailyPointsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date, d.lifecycle.Today())
	if err != nil {
		return nil, err
	}

	points, err := d.pointsRepo.Get(ctx, req.UserID, date)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get daily points: %v", err)
			return nil, errorx.Unknown
		}

		points = &entity.DailyPoints{UserID: req.UserID, Date: datatypes.Date(date)}
	}

	return &model.GetDailyPointsResponse{DailyPoints: model.ConvertDailyPoints(points)}, nil
}

func (d *gamificationDomain) CheckNewMedals(
	ctx context.Context, req *model.CheckNewMedalsRequest,
) (*model.CheckNewMedalsResponse, error) {
	if err := checkUserID(req.UserID); err != nil {
		return nil, err
	}

	var progress *progression.Progress
	var newMedals []entity.AwardedMedal
	err := withUserTransaction(ctx, d.locker, req.UserID, func(ctx context.Context) error {
		var err error
		progress, err = d.tracker.UpdateLevelProgress(ctx, req.UserID)
		if err != nil {
			return err
		}

		newMedals, err = d.medalManager.CheckNewMedals(ctx, medal.State{
			UserID:    req.UserID,
			Cycle:     progress.Cycle,
			UserLevel: progress.UserLevel,
			Now:       d.lifecycle.Now(),
			Today:     d.lifecycle.Today(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	d.publishProgress(ctx, progress, newMedals)

	return &model.CheckNewMedalsResponse{NewMedals: model.ConvertAwardedMedals(newMedals)}, nil
}
