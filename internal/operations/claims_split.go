package operations

import (
	"encoding/json"
	"fmt"

	"reinsurance-engine/internal/model"
)

type claimsSplitProps struct {
	GrossClaims float64 `json:"gross_claims"`
}

type ClaimsSplitHandler struct{}

func (h *ClaimsSplitHandler) Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if state.Treaty == nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_NOT_BOUND",
			Message: "No treaty is bound",
		})
		return msgs
	}

	var props claimsSplitProps
	json.Unmarshal(op.OperationProperties, &props)

	if props.GrossClaims < 0 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "INVALID_AMOUNT",
			Message: "Gross claims must be non-negative",
		})
		return msgs
	}

	return msgs
}

func (h *ClaimsSplitHandler) Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var props claimsSplitProps
	json.Unmarshal(op.OperationProperties, &props)

	split := engineFor(state).CalculateClaims(props.GrossClaims)
	state.Treaty.ClaimsSplits = append(state.Treaty.ClaimsSplits, split)

	// The aggregate limit caps each split independently, so the lifetime
	// total can pass the stated limit. Surface that as an advisory.
	terms := state.Treaty.Terms
	if terms.AnnualAggregateLimit != nil && !terms.CumulativeLimit {
		var lifetime float64
		for _, cs := range state.Treaty.ClaimsSplits {
			lifetime += cs.ReinsurerClaims
		}
		if lifetime > *terms.AnnualAggregateLimit {
			return []model.CalculationMessage{{
				Level: model.LevelWarning,
				Code:  "LIMIT_EXCEEDED_LIFETIME",
				Message: fmt.Sprintf("Lifetime reinsurer claims %.2f exceed the annual aggregate limit %.2f",
					lifetime, *terms.AnnualAggregateLimit),
			}}
		}
	}

	return nil
}
