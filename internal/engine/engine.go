package engine

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"reinsurance-engine/internal/jsonpatch"
	"reinsurance-engine/internal/model"
	"reinsurance-engine/internal/operations"
)

// Process applies the request's operations in order to a fresh worksheet.
// A CRITICAL message halts processing at the offending operation; state
// from earlier applied operations is reported as the end worksheet.
func Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	state := &model.Worksheet{Treaty: nil}

	var allMessages []model.CalculationMessage
	var processedOps []model.ProcessedOperation
	outcome := model.OutcomeSuccess
	hasCritical := false

	ops := req.CalculationInstructions.Operations
	if len(ops) == 0 {
		now := time.Now().UTC()
		return &model.CalculationResponse{
			CalculationMetadata: model.CalculationMetadata{
				CalculationID:          uuid.New().String(),
				TenantID:               req.TenantID,
				CalculationStartedAt:   now.Format(time.RFC3339),
				CalculationCompletedAt: now.Format(time.RFC3339),
				CalculationOutcome:     model.OutcomeSuccess,
			},
			CalculationResult: model.CalculationResult{
				Messages:         []model.CalculationMessage{},
				EndWorksheet:     model.WorksheetEnvelope{Worksheet: model.Worksheet{Treaty: nil}},
				InitialWorksheet: model.InitialWorksheet{Worksheet: model.Worksheet{Treaty: nil}},
			},
		}
	}

	// Track last successfully applied operation for end_worksheet
	lastOperationID := ops[0].OperationID
	lastOperationIndex := 0
	appliedAny := false

	for i, op := range ops {
		handler, ok := operations.Get(op.OperationDefinitionName)
		if !ok {
			msg := model.CalculationMessage{
				ID:      len(allMessages),
				Level:   model.LevelCritical,
				Code:    "UNKNOWN_OPERATION",
				Message: fmt.Sprintf("Unknown operation: %s", op.OperationDefinitionName),
			}
			allMessages = append(allMessages, msg)
			processedOps = append(processedOps, model.ProcessedOperation{
				Operation:                 op,
				CalculationMessageIndexes: []int{msg.ID},
			})
			outcome = model.OutcomeFailure
			hasCritical = true
			break
		}

		// Validate
		validationMsgs := handler.Validate(state, &op)
		var msgIndexes []int
		for _, vm := range validationMsgs {
			vm.ID = len(allMessages)
			allMessages = append(allMessages, vm)
			msgIndexes = append(msgIndexes, vm.ID)
			if vm.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		if hasCritical {
			outcome = model.OutcomeFailure
			processedOps = append(processedOps, model.ProcessedOperation{
				Operation:                 op,
				CalculationMessageIndexes: msgIndexes,
			})
			break
		}

		// Apply, diffing the worksheet around the change
		before := snapshot(state)
		applyMsgs := handler.Apply(state, &op)
		for _, am := range applyMsgs {
			am.ID = len(allMessages)
			allMessages = append(allMessages, am)
			msgIndexes = append(msgIndexes, am.ID)
			if am.Level == model.LevelCritical {
				hasCritical = true
			}
		}

		processedOps = append(processedOps, model.ProcessedOperation{
			Operation:                 op,
			CalculationMessageIndexes: msgIndexes,
			WorksheetPatch:            jsonpatch.Diff(before, snapshot(state)),
		})

		if hasCritical {
			outcome = model.OutcomeFailure
			break
		}

		// Track last successful operation
		lastOperationID = op.OperationID
		lastOperationIndex = i
		appliedAny = true
	}

	// end_worksheet: if no operation applied successfully, state is {treaty: null}
	endWorksheet := model.WorksheetEnvelope{
		OperationID:    lastOperationID,
		OperationIndex: lastOperationIndex,
		Worksheet:      *state,
	}

	if hasCritical && !appliedAny {
		endWorksheet.Worksheet = model.Worksheet{Treaty: nil}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Operations:   processedOps,
			EndWorksheet: endWorksheet,
			InitialWorksheet: model.InitialWorksheet{
				Worksheet: model.Worksheet{Treaty: nil},
			},
		},
	}
}

// snapshot round-trips the worksheet through JSON so patches are computed
// over the wire representation rather than Go values.
func snapshot(state *model.Worksheet) interface{} {
	b, err := json.Marshal(state)
	if err != nil {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	return v
}
