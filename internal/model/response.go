package model

type PlanResponse struct {
	PlanMetadata PlanMetadata `json:"plan_metadata"`
	PlanResult   PlanResult   `json:"plan_result"`
}

type PlanMetadata struct {
	PlanID          string `json:"plan_id"`
	RequestID       string `json:"request_id,omitempty"`
	CatalogVersion  string `json:"catalog_version"`
	PlanStartedAt   string `json:"plan_started_at"`
	PlanCompletedAt string `json:"plan_completed_at"`
	PlanDurationMs  int64  `json:"plan_duration_ms"`
	PlanOutcome     string `json:"plan_outcome"`
}

type PlanResult struct {
	Messages       []PlanMessage     `json:"messages"`
	Picks          []ProcessedPick   `json:"picks"`
	EndSelection   SelectionEnvelope `json:"end_selection"`
	AllowedOptions AllowedOptions    `json:"allowed_options"`
	Quote          *Quote            `json:"quote,omitempty"`
}

type ProcessedPick struct {
	Pick               Pick            `json:"pick"`
	AllowedOptions     *AllowedOptions `json:"allowed_options,omitempty"`
	Eliminated         *Narrowing      `json:"eliminated,omitempty"`
	PlanMessageIndexes []int           `json:"plan_message_indexes,omitempty"`
}

type SelectionEnvelope struct {
	PickIndex int       `json:"pick_index"`
	Selection Selection `json:"selection"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
