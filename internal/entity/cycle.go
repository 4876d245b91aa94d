package entity

import (
	"database/sql"
	"time"

	"github.com/vitalcycle/backend/pkg/enum"
)

// CycleLengthDays is the length of a treatment cycle.
const CycleLengthDays = 30

type CycleStatus string

var (
	CycleActive         = enum.New(CycleStatus("ACTIVE"))
	CyclePendingRenewal = enum.New(CycleStatus("PENDING_RENEWAL"))
	CycleCompleted      = enum.New(CycleStatus("COMPLETED"))
	CycleExpired        = enum.New(CycleStatus("EXPIRED"))
)

// CurrentCycleStatuses are the statuses of the single cycle a user is
// currently in.
var CurrentCycleStatuses = []CycleStatus{CycleActive, CyclePendingRenewal}

type Cycle struct {
	Base

	UserID      string `gorm:"not null;uniqueIndex:idx_cycles_user_id_cycle_number"`
	CycleNumber int    `gorm:"not null;uniqueIndex:idx_cycles_user_id_cycle_number"`

	StartAt time.Time
	EndAt   time.Time
	Status  CycleStatus `gorm:"index"`

	OnboardingCompletedAt sql.NullTime
	OnboardingScores      Map
	Phenotype             sql.NullString
	ProgramID             sql.NullString
}

func (c *Cycle) IsCurrent() bool {
	return c.Status == CycleActive || c.Status == CyclePendingRenewal
}
