package model

// Worksheet is the in-memory state one calculation run operates on.
// At most one treaty can be bound per run.
type Worksheet struct {
	Treaty *Treaty `json:"treaty"`
}

type Treaty struct {
	TreatyID          string                   `json:"treaty_id"`
	Status            string                   `json:"status"`
	Terms             TreatyTerms              `json:"terms"`
	PremiumSplits     []PremiumSplit           `json:"premium_splits"`
	ClaimsSplits      []ClaimsSplit            `json:"claims_splits"`
	ProfitCommissions []ProfitCommissionResult `json:"profit_commissions"`
	Cashflow          []PeriodResult           `json:"cashflow"`
}

const StatusBound = "BOUND"
