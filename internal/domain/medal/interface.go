package medal

import (
	"context"
	"time"

	"github.com/vitalcycle/backend/internal/entity"
)

// State is the progression snapshot which medals are evaluated against.
type State struct {
	UserID    string
	Cycle     *entity.Cycle
	UserLevel *entity.UserLevel

	// Now stamps new awards, Today is its canonical date.
	Now   time.Time
	Today time.Time
}

// Criterion is the eligibility rule of one medal.
type Criterion interface {
	// Always return errorx in this method.
	Check(ctx context.Context, state State) (bool, error)

	// Statement describes the rule to the user.
	Statement() string
}
