package operations

import (
	"encoding/json"
	"fmt"

	"reinsurance-engine/internal/model"
	"reinsurance-engine/internal/treaty"
	"reinsurance-engine/internal/treatyregistry"
)

type bindTreatyProps struct {
	TreatyID  string             `json:"treaty_id"`
	TreatyRef string             `json:"treaty_ref,omitempty"`
	Terms     *model.TreatyTerms `json:"terms,omitempty"`
}

type BindTreatyHandler struct{}

func (h *BindTreatyHandler) Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var msgs []model.CalculationMessage

	if state.Treaty != nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_ALREADY_BOUND",
			Message: "A treaty is already bound",
		})
		return msgs
	}

	var props bindTreatyProps
	json.Unmarshal(op.OperationProperties, &props)

	terms, msg := resolveTerms(props)
	if msg != nil {
		msgs = append(msgs, *msg)
		return msgs
	}

	if _, err := treaty.New(*terms); err != nil {
		msgs = append(msgs, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "INVALID_TREATY_TERMS",
			Message: err.Error(),
		})
		return msgs
	}

	return msgs
}

func (h *BindTreatyHandler) Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage {
	var props bindTreatyProps
	json.Unmarshal(op.OperationProperties, &props)

	// Validate already resolved and checked the terms; registry lookups
	// are cached, so the second resolution is a map read.
	terms, _ := resolveTerms(props)
	eng, _ := treaty.New(*terms)

	state.Treaty = &model.Treaty{
		TreatyID:          props.TreatyID,
		Status:            model.StatusBound,
		Terms:             eng.Terms(),
		PremiumSplits:     []model.PremiumSplit{},
		ClaimsSplits:      []model.ClaimsSplit{},
		ProfitCommissions: []model.ProfitCommissionResult{},
		Cashflow:          []model.PeriodResult{},
	}

	return nil
}

func resolveTerms(props bindTreatyProps) (*model.TreatyTerms, *model.CalculationMessage) {
	if props.Terms != nil {
		return props.Terms, nil
	}

	if props.TreatyRef == "" {
		return nil, &model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "MISSING_TREATY_TERMS",
			Message: "Either terms or treaty_ref is required",
		}
	}

	terms, ok := treatyregistry.GetTerms(props.TreatyRef)
	if !ok {
		return nil, &model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    "TREATY_REF_UNRESOLVED",
			Message: fmt.Sprintf("Treaty reference %s could not be resolved", props.TreatyRef),
		}
	}
	return &terms, nil
}
