package model

type Cycle struct {
	ID                    string         `json:"id"`
	UserID                string         `json:"user_id"`
	CycleNumber           int            `json:"cycle_number"`
	StartAt               string         `json:"start_at"`
	EndAt                 string         `json:"end_at"`
	Status                string         `json:"status"`
	OnboardingCompletedAt string         `json:"onboarding_completed_at,omitempty"`
	OnboardingScores      map[string]any `json:"onboarding_scores,omitempty"`
	Phenotype             string         `json:"phenotype,omitempty"`
	ProgramID             string         `json:"program_id,omitempty"`
}

type DailyPoints struct {
	UserID               string `json:"user_id"`
	Date                 string `json:"date"`
	CycleID              string `json:"cycle_id"`
	HabitPoints          int    `json:"habit_points"`
	BonusCompletion      int    `json:"bonus_completion"`
	BonusStreak          int    `json:"bonus_streak"`
	BonusPromotedHabit   int    `json:"bonus_promoted_habit"`
	TotalPoints          int    `json:"total_points"`
	HabitsCompletedCount int    `json:"habits_completed_count"`
	HabitsTotalCount     int    `json:"habits_total_count"`
	StreakOnDate         int    `json:"streak_on_date"`
}

type UserLevel struct {
	UserID             string `json:"user_id"`
	CurrentCycleID     string `json:"current_cycle_id,omitempty"`
	CurrentLevel       string `json:"current_level"`
	CurrentCyclePoints int    `json:"current_cycle_points"`
	TotalPointsAllTime int    `json:"total_points_all_time"`
	CurrentStreak      int    `json:"current_streak"`
	LongestStreak      int    `json:"longest_streak"`
	LastActivityDate   string `json:"last_activity_date,omitempty"`
}

type MedalCriterion struct {
	Type string         `json:"type" toml:"type" yaml:"type"`
	Data map[string]any `json:"data,omitempty" toml:"data" yaml:"data"`
}

type Medal struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	IconURL             string         `json:"icon_url"`
	RequiredPoints      int            `json:"required_points"`
	RequiredLevel       string         `json:"required_level"`
	RequiredCycleNumber int            `json:"required_cycle_number"`
	Criterion           MedalCriterion `json:"criterion"`
	Statement           string         `json:"statement,omitempty"`
	IsActive            bool           `json:"is_active"`
}

type AwardedMedal struct {
	Medal            Medal  `json:"medal"`
	CycleEarnedID    string `json:"cycle_earned_id"`
	PointsWhenEarned int    `json:"points_when_earned"`
	LevelWhenEarned  string `json:"level_when_earned"`
	EarnedAt         string `json:"earned_at"`
	WasNotified      bool   `json:"was_notified"`
}

// Warning is a non fatal problem of an operation whose primary action
// succeeded.
type Warning struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
