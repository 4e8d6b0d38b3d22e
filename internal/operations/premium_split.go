package operations

import (
	"encoding/json"

	"reinsurance-engine/internal/model"
)

type premiumSplitProps struct {
	GrossPremium float64 `json:"gross_premium"`
}

type PremiumSplitHandler struct{}

func (h *PremiumSplitHandler) Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if state.Treaty == nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_NOT_BOUND",
			Message: "No treaty is bound",
		})
		return msgs
	}

	var props premiumSplitProps
	json.Unmarshal(op.OperationProperties, &props)

	if props.GrossPremium < 0 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "INVALID_AMOUNT",
			Message: "Gross premium must be non-negative",
		})
		return msgs
	}

	return msgs
}

func (h *PremiumSplitHandler) Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var props premiumSplitProps
	json.Unmarshal(op.OperationProperties, &props)

	split := engineFor(state).CalculatePremium(props.GrossPremium)
	state.Treaty.PremiumSplits = append(state.Treaty.PremiumSplits, split)

	return nil
}
