package entity

import (
	"database/sql"
	"time"

	"github.com/vitalcycle/backend/pkg/enum"
	"golang.org/x/exp/slices"
)

type Level string

// The registration order below is the ordinal scale of levels.
var (
	LevelNovato  = enum.New(Level("NOVATO"))
	LevelBronce  = enum.New(Level("BRONCE"))
	LevelPlata   = enum.New(Level("PLATA"))
	LevelOro     = enum.New(Level("ORO"))
	LevelPlatino = enum.New(Level("PLATINO"))
	LevelMaestro = enum.New(Level("MAESTRO"))
)

// Rank returns the position of the level on the ordinal scale, or -1 for an
// unknown level.
func (l Level) Rank() int {
	return slices.Index(enum.Values[Level](), l)
}

// AtLeast reports whether l is the same as or above other.
func (l Level) AtLeast(other Level) bool {
	return l.Rank() >= other.Rank()
}

// UserLevel is the cross-cycle progression state of a user.
type UserLevel struct {
	UserID string `gorm:"primaryKey"`

	// CurrentCycleID caches the cycle being scored. It is only refreshed by the
	// level progression tracker.
	CurrentCycleID sql.NullString

	CurrentLevel       Level
	CurrentCyclePoints int
	TotalPointsAllTime int

	CurrentStreak    int
	LongestStreak    int
	LastActivityDate sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}
