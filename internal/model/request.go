package model

import "encoding/json"

type CalculationRequest struct {
	TenantID                string                  `json:"tenant_id"`
	CalculationInstructions CalculationInstructions `json:"calculation_instructions"`
}

type CalculationInstructions struct {
	Operations []Operation `json:"operations"`
}

type Operation struct {
	OperationID             string          `json:"operation_id"`
	OperationDefinitionName string          `json:"operation_definition_name"`
	OperationType           string          `json:"operation_type"`
	OperationProperties     json.RawMessage `json:"operation_properties"`
}
