package operations

import (
	"encoding/json"
	"fmt"

	"reinsurance-engine/internal/model"
)

type cashflowAnalysisProps struct {
	Periods  []string  `json:"periods"`
	Premiums []float64 `json:"premiums"`
	Claims   []float64 `json:"claims"`
}

type CashflowAnalysisHandler struct{}

func (h *CashflowAnalysisHandler) Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if state.Treaty == nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_NOT_BOUND",
			Message: "No treaty is bound",
		})
		return msgs
	}

	var props cashflowAnalysisProps
	json.Unmarshal(op.OperationProperties, &props)

	if len(props.Periods) == 0 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "MISSING_PERIODS",
			Message: "At least one period is required",
		})
		return msgs
	}

	for _, premium := range props.Premiums {
		if premium < 0 {
			msgs = append(msgs, model.CalculationMessage{
				Level:   model.LevelCritical,
				Code:    "INVALID_AMOUNT",
				Message: "Premiums must be non-negative",
			})
			return msgs
		}
	}
	for _, claim := range props.Claims {
		if claim < 0 {
			msgs = append(msgs, model.CalculationMessage{
				Level:   model.LevelCritical,
				Code:    "INVALID_AMOUNT",
				Message: "Claims must be non-negative",
			})
			return msgs
		}
	}

	// Mismatched lengths truncate to the shortest sequence rather than
	// failing; warn so callers notice dropped elements.
	if len(props.Premiums) != len(props.Periods) || len(props.Claims) != len(props.Periods) {
		msgs = append(msgs, model.CalculationMessage{
			Level: model.LevelWarning,
			Code:  "SEQUENCE_LENGTH_MISMATCH",
			Message: fmt.Sprintf("Got %d periods, %d premiums, %d claims; excess elements are dropped",
				len(props.Periods), len(props.Premiums), len(props.Claims)),
		})
	}

	return msgs
}

func (h *CashflowAnalysisHandler) Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var props cashflowAnalysisProps
	json.Unmarshal(op.OperationProperties, &props)

	results := engineFor(state).GenerateCashflowAnalysis(props.Premiums, props.Claims, props.Periods)
	state.Treaty.Cashflow = results

	terms := state.Treaty.Terms
	if terms.AnnualAggregateLimit != nil && !terms.CumulativeLimit {
		var lifetime float64
		for _, r := range results {
			lifetime += r.ReinsurerClaims
		}
		if lifetime > *terms.AnnualAggregateLimit {
			return []model.CalculationMessage{{
				Level: model.LevelWarning,
				Code:  "LIMIT_EXCEEDED_LIFETIME",
				Message: fmt.Sprintf("Cumulative reinsurer claims %.2f exceed the annual aggregate limit %.2f",
					lifetime, *terms.AnnualAggregateLimit),
			}}
		}
	}

	return nil
}
