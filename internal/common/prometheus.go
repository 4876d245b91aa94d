package common

import "github.com/prometheus/client_golang/prometheus"

const (
	DailyPointsProcessedTotal   = "daily_points_processed_total"
	LevelUpsTotal               = "level_ups_total"
	MedalsAwardedTotal          = "medals_awarded_total"
	CyclesCreatedTotal          = "cycles_created_total"
	DegradedComputationsTotal   = "degraded_computations_total"
	ReconcileDurationSeconds    = "reconcile_duration_seconds"
	GamificationDurationSeconds = "gamification_duration_seconds"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		DailyPointsProcessedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DailyPointsProcessedTotal,
			Help: "Count of daily point computations",
		}, []string{"source"}),
		LevelUpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LevelUpsTotal,
			Help: "Count of level promotions",
		}, []string{"level"}),
		MedalsAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MedalsAwardedTotal,
			Help: "Count of awarded medals",
		}, []string{"medal"}),
		CyclesCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CyclesCreatedTotal,
			Help: "Count of created cycles",
		}, []string{}),
		DegradedComputationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DegradedComputationsTotal,
			Help: "Count of habit completions whose gamification step failed",
		}, []string{}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		ReconcileDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: ReconcileDurationSeconds,
			Help: "Duration of daily reconciliation runs",
		}, []string{"status"}),
		GamificationDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: GamificationDurationSeconds,
			Help: "Duration of one daily gamification pass of a user",
		}, []string{"status"}),
	}
)
