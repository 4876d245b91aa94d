package model

const (
	SourceHabitLog  = "habit_log"
	SourceReconcile = "reconcile"
	SourceManual    = "manual"
)

type ProcessDailyGamificationRequest struct {
	UserID string `json:"user_id"`

	// Date is formatted as 2006-01-02. Empty means today.
	Date string `json:"date"`

	// Source labels the trigger in metrics.
	Source string `json:"source"`
}

type ProcessDailyGamificationResponse struct {
	DailyPoints  DailyPoints    `json:"daily_points"`
	UserLevel    UserLevel      `json:"user_level"`
	NewMedals    []AwardedMedal `json:"new_medals"`
	LevelChanged bool           `json:"level_changed"`
}

type RecordHabitCompletionRequest struct {
	UserID          string `json:"user_id"`
	HabitID         string `json:"habit_id"`
	Date            string `json:"date"`
	CompletionLevel int    `json:"completion_level"`
	IsPromoted      bool   `json:"is_promoted"`
}

type RecordHabitCompletionResponse struct {
	Gamification *ProcessDailyGamificationResponse `json:"gamification,omitempty"`
	Warning      *Warning                          `json:"warning,omitempty"`
}

type GetUserProgressRequest struct {
	UserID string `json:"user_id"`
}

type GetUserProgressResponse struct {
	UserLevel     UserLevel      `json:"user_level"`
	CurrentCycle  *Cycle         `json:"current_cycle"`
	DaysElapsed   int            `json:"days_elapsed"`
	DaysRemaining int            `json:"days_remaining"`
	CycleHistory  []DailyPoints  `json:"cycle_history"`
	Cycles        []Cycle        `json:"cycles"`
	AwardedMedals []AwardedMedal `json:"awarded_medals"`
}

type GetDailyPointsRequest struct {
	UserID string `json:"user_id"`

	// Date is formatted as 2006-01-02. Empty means today.
	Date string `json:"date"`
}

type GetDailyPointsResponse struct {
	DailyPoints DailyPoints `json:"daily_points"`
}

type CheckNewMedalsRequest struct {
	UserID string `json:"user_id"`
}

type CheckNewMedalsResponse struct {
	NewMedals []AwardedMedal `json:"new_medals"`
}
