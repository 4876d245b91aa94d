package model

var (
	CycleCreatedTopic = "CYCLE_CREATED"
	LevelUpTopic      = "LEVEL_UP"
	MedalAwardedTopic = "MEDAL_AWARDED"
)
