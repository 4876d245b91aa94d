package model

type CycleCreatedEvent struct {
	ID          int64  `json:"id"`
	UserID      string `json:"user_id"`
	CycleID     string `json:"cycle_id"`
	CycleNumber int    `json:"cycle_number"`
	StartAt     string `json:"start_at"`
}

type LevelUpEvent struct {
	ID            int64  `json:"id"`
	UserID        string `json:"user_id"`
	CycleID       string `json:"cycle_id"`
	PreviousLevel string `json:"previous_level"`
	Level         string `json:"level"`
	CyclePoints   int    `json:"cycle_points"`
	At            string `json:"at"`
}

type MedalAwardedEvent struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	MedalID   string `json:"medal_id"`
	MedalName string `json:"medal_name"`
	CycleID   string `json:"cycle_id"`
	Points    int    `json:"points"`
	Level     string `json:"level"`
	At        string `json:"at"`
}
