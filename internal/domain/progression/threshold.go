package progression

import (
	"fmt"

	"github.com/vitalcycle/backend/config"
	"github.com/vitalcycle/backend/internal/entity"
	"github.com/vitalcycle/backend/pkg/enum"
	"golang.org/x/exp/slices"
)

// Threshold is the number of cycle points which promotes a user to Level
// during the cycle with the given number.
type Threshold struct {
	CycleNumber int
	Points      int
	Level       entity.Level
}

func NewThresholds(cfg []config.LevelThreshold) ([]Threshold, error) {
	if len(cfg) == 0 {
		return nil, fmt.Errorf("empty level threshold table")
	}

	thresholds := make([]Threshold, 0, len(cfg))
	for _, c := range cfg {
		level, err := enum.ToEnum[entity.Level](c.Level)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", c.CycleNumber, err)
		}

		if c.CycleNumber < 1 || c.Points < 0 {
			return nil, fmt.Errorf("invalid threshold %+v", c)
		}

		thresholds = append(thresholds, Threshold{
			CycleNumber: c.CycleNumber,
			Points:      c.Points,
			Level:       level,
		})
	}

	slices.SortFunc(thresholds, func(a, b Threshold) bool {
		return a.CycleNumber < b.CycleNumber
	})

	for i := 1; i < len(thresholds); i++ {
		if thresholds[i].CycleNumber == thresholds[i-1].CycleNumber {
			return nil, fmt.Errorf("duplicated threshold of cycle %d", thresholds[i].CycleNumber)
		}
	}

	return thresholds, nil
}

// ThresholdFor returns the threshold of the cycle number. A cycle number
// missing from the table uses the closest smaller entry, so the last entry
// applies to every later cycle.
func ThresholdFor(thresholds []Threshold, cycleNumber int) (Threshold, bool) {
	found := false
	var result Threshold
	for _, t := range thresholds {
		if t.CycleNumber > cycleNumber {
			break
		}

		result = t
		found = true
	}

	return result, found
}
