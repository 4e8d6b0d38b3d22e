package operations

import (
	"encoding/json"

	"reinsurance-engine/internal/model"
)

type profitCommissionProps struct {
	CededPremium float64 `json:"ceded_premium"`
	CededClaims  float64 `json:"ceded_claims"`
}

type ProfitCommissionHandler struct{}

func (h *ProfitCommissionHandler) Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if state.Treaty == nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_NOT_BOUND",
			Message: "No treaty is bound",
		})
		return msgs
	}

	var props profitCommissionProps
	json.Unmarshal(op.OperationProperties, &props)

	if props.CededPremium < 0 || props.CededClaims < 0 {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "INVALID_AMOUNT",
			Message: "Ceded premium and claims must be non-negative",
		})
		return msgs
	}

	return msgs
}

func (h *ProfitCommissionHandler) Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var props profitCommissionProps
	json.Unmarshal(op.OperationProperties, &props)

	amount := engineFor(state).CalculateProfitCommission(props.CededPremium, props.CededClaims)

	var lossRatio float64
	if props.CededPremium > 0 {
		lossRatio = props.CededClaims / props.CededPremium
	}

	state.Treaty.ProfitCommissions = append(state.Treaty.ProfitCommissions, model.ProfitCommissionResult{
		CededPremium:     props.CededPremium,
		CededClaims:      props.CededClaims,
		LossRatio:        lossRatio,
		ProfitCommission: amount,
	})

	return nil
}
