package lifecycle

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/internal/repository"
	"github.com/vitalcycle/backend/pkg/dateutil"
	"github.com/vitalcycle/backend/pkg/errorx"
	"github.com/vitalcycle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Manager owns the per-user sequence of cycles. It does not lock nor open
// transactions, callers which write run it inside both.
type Manager struct {
	cycleRepo repository.CycleRepository
	clock     dateutil.Clock
	loc       *time.Location
}

func NewManager(cycleRepo repository.CycleRepository, clock dateutil.Clock, loc *time.Location) *Manager {
	return &Manager{cycleRepo: cycleRepo, clock: clock, loc: loc}
}

func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

func (m *Manager) Today() time.Time {
	return dateutil.Today(m.clock, m.loc)
}

func (m *Manager) DaysElapsed(cycle *entity.Cycle) int {
	return DaysElapsed(cycle, m.clock.Now(), m.loc)
}

func (m *Manager) DaysRemaining(cycle *entity.Cycle) int {
	return DaysRemaining(cycle, m.clock.Now(), m.loc)
}

// GetCurrentCycle returns the ACTIVE or PENDING_RENEWAL cycle of the user, or
// nil if there is none. An ACTIVE cycle whose days are over is moved to
// PENDING_RENEWAL before being returned.
func (m *Manager) GetCurrentCycle(ctx context.Context, userID string) (*entity.Cycle, error) {
	cycle, err := m.cycleRepo.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get current cycle: %v", err)
		return nil, errorx.Unknown
	}

	if cycle.Status == entity.CycleActive && m.DaysElapsed(cycle) >= entity.CycleLengthDays {
		if err := m.cycleRepo.UpdateStatus(ctx, cycle.ID, entity.CyclePendingRenewal); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot move cycle to pending renewal: %v", err)
			return nil, errorx.Unknown
		}

		cycle.Status = entity.CyclePendingRenewal
		xcontext.Logger(ctx).Debugf("Cycle %d of %s is pending renewal", cycle.CycleNumber, userID)
	}

	return cycle, nil
}

// NeedsNewCycle is false only while the user has an ACTIVE cycle. Onboarding
// does not gate renewal.
func (m *Manager) NeedsNewCycle(ctx context.Context, userID string) (bool, error) {
	cycle, err := m.GetCurrentCycle(ctx, userID)
	if err != nil {
		return false, err
	}

	return cycle == nil || cycle.Status != entity.CycleActive, nil
}

// CreateNewCycle starts the next cycle of the user.
func (m *Manager) CreateNewCycle(ctx context.Context, userID string) (*entity.Cycle, error) {
	return m.CreateCycle(ctx, userID, 0)
}

// CreateCycle starts a cycle with the given number, or with the next number
// when cycleNumber is zero. A PENDING_RENEWAL cycle is superseded and becomes
// COMPLETED. It fails with AlreadyExists while the current cycle is ACTIVE or
// when the number is taken.
func (m *Manager) CreateCycle(ctx context.Context, userID string, cycleNumber int) (*entity.Cycle, error) {
	current, err := m.GetCurrentCycle(ctx, userID)
	if err != nil {
		return nil, err
	}

	if current != nil && current.Status == entity.CycleActive {
		return nil, errorx.New(errorx.AlreadyExists, "Cycle %d is still active", current.CycleNumber)
	}

	nextNumber := 1
	latest, err := m.cycleRepo.GetLatest(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get latest cycle: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		nextNumber = latest.CycleNumber + 1
	}

	if cycleNumber == 0 {
		cycleNumber = nextNumber
	}

	if cycleNumber < 1 || cycleNumber > nextNumber {
		return nil, errorx.New(errorx.BadRequest, "Cycle number must be between 1 and %d", nextNumber)
	}

	if current != nil {
		if err := m.cycleRepo.UpdateStatus(ctx, current.ID, entity.CycleCompleted); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot complete the previous cycle: %v", err)
			return nil, errorx.Unknown
		}
	}

	now := m.clock.Now().UTC()
	cycle := &entity.Cycle{
		Base:        entity.Base{ID: uuid.NewString()},
		UserID:      userID,
		CycleNumber: cycleNumber,
		StartAt:     now,
		EndAt:       now.AddDate(0, 0, entity.CycleLengthDays),
		Status:      entity.CycleActive,
	}

	if err := m.cycleRepo.Create(ctx, cycle); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Cycle %d already exists", cycleNumber)
		}

		xcontext.Logger(ctx).Errorf("Cannot create cycle: %v", err)
		return nil, errorx.Unknown
	}

	return cycle, nil
}

// GetCycleForDate returns the cycle which a day's points belong to: the latest
// cycle which had started on or before that date.
func (m *Manager) GetCycleForDate(ctx context.Context, userID string, date time.Time) (*entity.Cycle, error) {
	y, mo, d := date.Date()
	nextLocalMidnight := time.Date(y, mo, d+1, 0, 0, 0, 0, m.loc).UTC()

	cycle, err := m.cycleRepo.GetStartedBefore(ctx, userID, nextLocalMidnight)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User has no cycle on %s", dateutil.FormatDate(date))
		}

		xcontext.Logger(ctx).Errorf("Cannot get cycle for date: %v", err)
		return nil, errorx.Unknown
	}

	return cycle, nil
}

func (m *Manager) GetCycle(ctx context.Context, cycleID string) (*entity.Cycle, error) {
	cycle, err := m.cycleRepo.GetByID(ctx, cycleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found cycle")
		}

		xcontext.Logger(ctx).Errorf("Cannot get cycle: %v", err)
		return nil, errorx.Unknown
	}

	return cycle, nil
}

// GetCycles returns every cycle of the user, oldest first.
func (m *Manager) GetCycles(ctx context.Context, userID string) ([]entity.Cycle, error) {
	cycles, err := m.cycleRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get cycles: %v", err)
		return nil, errorx.Unknown
	}

	return cycles, nil
}

// Expire invalidates a current cycle. Terminal cycles cannot be expired.
func (m *Manager) Expire(ctx context.Context, cycleID string) (*entity.Cycle, error) {
	cycle, err := m.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	if !cycle.IsCurrent() {
		return nil, errorx.New(errorx.BadRequest, "Cycle is already %s", cycle.Status)
	}

	if err := m.cycleRepo.UpdateStatus(ctx, cycle.ID, entity.CycleExpired); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire cycle: %v", err)
		return nil, errorx.Unknown
	}

	cycle.Status = entity.CycleExpired
	return cycle, nil
}

// CompleteOnboarding stores the onboarding result on the cycle. The first
// completion time is kept when called again.
func (m *Manager) CompleteOnboarding(
	ctx context.Context, cycleID string, scores entity.Map, phenotype, programID string,
) (*entity.Cycle, error) {
	cycle, err := m.GetCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	return m.completeOnboarding(ctx, cycle, scores, phenotype, programID)
}

// MarkOnboardingComplete stamps the onboarding of the current cycle. It
// returns nil when the user has no current cycle.
func (m *Manager) MarkOnboardingComplete(ctx context.Context, userID string) (*entity.Cycle, error) {
	cycle, err := m.GetCurrentCycle(ctx, userID)
	if err != nil || cycle == nil {
		return nil, err
	}

	return m.completeOnboarding(ctx, cycle, nil, "", "")
}

func (m *Manager) completeOnboarding(
	ctx context.Context, cycle *entity.Cycle, scores entity.Map, phenotype, programID string,
) (*entity.Cycle, error) {
	update := &entity.Cycle{}
	if !cycle.OnboardingCompletedAt.Valid {
		update.OnboardingCompletedAt = sql.NullTime{Valid: true, Time: m.clock.Now().UTC()}
	}

	if scores != nil {
		update.OnboardingScores = scores
	}

	if phenotype != "" {
		update.Phenotype = sql.NullString{Valid: true, String: phenotype}
	}

	if programID != "" {
		update.ProgramID = sql.NullString{Valid: true, String: programID}
	}

	if err := m.cycleRepo.UpdateByID(ctx, cycle.ID, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update onboarding of cycle: %v", err)
		return nil, errorx.Unknown
	}

	if update.OnboardingCompletedAt.Valid {
		cycle.OnboardingCompletedAt = update.OnboardingCompletedAt
	}
	if update.OnboardingScores != nil {
		cycle.OnboardingScores = update.OnboardingScores
	}
	if update.Phenotype.Valid {
		cycle.Phenotype = update.Phenotype
	}
	if update.ProgramID.Valid {
		cycle.ProgramID = update.ProgramID
	}

	return cycle, nil
}
