package model

import "encoding/json"

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages         []CalculationMessage `json:"messages"`
	Operations       []ProcessedOperation `json:"operations"`
	EndWorksheet     WorksheetEnvelope    `json:"end_worksheet"`
	InitialWorksheet InitialWorksheet     `json:"initial_worksheet"`
}

type ProcessedOperation struct {
	Operation                 Operation       `json:"operation"`
	CalculationMessageIndexes []int           `json:"calculation_message_indexes,omitempty"`
	WorksheetPatch            json.RawMessage `json:"worksheet_patch,omitempty"`
}

type WorksheetEnvelope struct {
	OperationID    string    `json:"operation_id"`
	OperationIndex int       `json:"operation_index"`
	Worksheet      Worksheet `json:"worksheet"`
}

type InitialWorksheet struct {
	Worksheet Worksheet `json:"worksheet"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
