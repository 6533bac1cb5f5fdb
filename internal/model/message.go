package model

type PlanMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

// Codes raised while replaying picks, before any selection rule runs.
const (
	CodeUnknownDimension = "UNKNOWN_DIMENSION"
	CodeMalformedValue   = "MALFORMED_VALUE"
)
