package model

type GetCurrentCycleRequest struct {
	UserID string `json:"user_id"`
}

type GetCurrentCycleResponse struct {
	Cycle *Cycle `json:"cycle"`
}

type NeedsNewCycleRequest struct {
	UserID string `json:"user_id"`
}

type NeedsNewCycleResponse struct {
	NeedsNewCycle bool `json:"needs_new_cycle"`
}

type CreateNewCycleRequest struct {
	UserID string `json:"user_id"`

	// CycleNumber is only set by administrative tooling. Zero means the next
	// number.
	CycleNumber int `json:"cycle_number,omitempty"`
}

type CreateNewCycleResponse struct {
	Cycle Cycle `json:"cycle"`
}

type GetCycleStatusRequest struct {
	UserID string `json:"user_id"`
}

type GetCycleStatusResponse struct {
	Cycle         *Cycle `json:"cycle"`
	DaysElapsed   int    `json:"days_elapsed"`
	DaysRemaining int    `json:"days_remaining"`
	NeedsNewCycle bool   `json:"needs_new_cycle"`
}

type ExpireCycleRequest struct {
	CycleID string `json:"cycle_id"`
}

type ExpireCycleResponse struct {
	Cycle Cycle `json:"cycle"`
}

type CompleteCycleOnboardingRequest struct {
	CycleID   string         `json:"cycle_id"`
	Scores    map[string]any `json:"scores"`
	Phenotype string         `json:"phenotype"`
	ProgramID string         `json:"program_id"`
}

type CompleteCycleOnboardingResponse struct {
	Cycle Cycle `json:"cycle"`
}

type MarkCycleOnboardingCompleteRequest struct {
	UserID string `json:"user_id"`
}

type MarkCycleOnboardingCompleteResponse struct {
	Cycle *Cycle `json:"cycle"`
}
