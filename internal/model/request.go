package model

import json "github.com/goccy/go-json"

// PlanRequest replays the picks of a wizard flow in order.
type PlanRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Picks     []Pick `json:"picks"`
}

type Pick struct {
	PickID    string          `json:"pick_id,omitempty"`
	Dimension string          `json:"dimension"`
	Value     json.RawMessage `json:"value"`
}

// SelectionRequest is the body of the options, validate and price routes.
type SelectionRequest struct {
	Selection Selection `json:"selection"`
}
