package operations

import (
	"reinsurance-engine/internal/model"
	"reinsurance-engine/internal/treaty"
)

// OperationHandler defines the contract for all calculation operations.
// Each operation validates business rules and applies worksheet changes.
type OperationHandler interface {
	Validate(state *model.Worksheet, op *model.Operation) []model.CalculationMessage
	Apply(state *model.Worksheet, op *model.Operation) []model.CalculationMessage
}

// engineFor rebuilds the calculation engine from the worksheet's bound
// terms. Terms were validated when the treaty was bound, so construction
// cannot fail here.
func engineFor(state *model.Worksheet) *treaty.Engine {
	eng, _ := treaty.New(state.Treaty.Terms)
	return eng
}
