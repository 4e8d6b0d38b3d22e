package model

// TreatyTerms is the configuration of a quota share treaty. Rates are
// percentages in [0,100]; the profit commission threshold is a loss ratio
// fraction, where 0 means unset and resolves to the engine default — a
// treaty that should never pay profit commission sets
// ProfitCommissionRate to 0 instead. A nil AnnualAggregateLimit means the
// reinsurer's claims liability is uncapped. CumulativeLimit switches the
// aggregate limit from per-call capping to capping the running reinsurer
// claims total across a cashflow run.
type TreatyTerms struct {
	CessionRate               float64  `json:"cession_rate"`
	CommissionRate            float64  `json:"commission_rate"`
	ProfitCommissionRate      float64  `json:"profit_commission_rate"`
	ProfitCommissionThreshold float64  `json:"profit_commission_threshold"`
	AnnualAggregateLimit      *float64 `json:"annual_aggregate_limit"`
	CumulativeLimit           bool     `json:"cumulative_limit,omitempty"`
}

// PremiumSplit is the outcome of splitting one gross premium amount
// between cedant and reinsurer.
type PremiumSplit struct {
	GrossPremium          float64 `json:"gross_premium"`
	CessionRate           float64 `json:"cession_rate"`
	CededPremium          float64 `json:"ceded_premium"`
	RetainedPremium       float64 `json:"retained_premium"`
	CedingCommission      float64 `json:"ceding_commission"`
	NetPremiumToReinsurer float64 `json:"net_premium_to_reinsurer"`
	CommissionRate        float64 `json:"commission_rate"`
}

// ClaimsSplit is the outcome of splitting one gross claims amount.
// ReinsurerClaims already has the annual aggregate limit applied.
type ClaimsSplit struct {
	GrossClaims     float64 `json:"gross_claims"`
	ReinsurerClaims float64 `json:"reinsurer_claims"`
	CedantClaims    float64 `json:"cedant_claims"`
	ClaimsRatio     float64 `json:"claims_ratio"`
}

// ProfitCommissionResult records one profit commission computation over
// explicit ceded premium and claims figures.
type ProfitCommissionResult struct {
	CededPremium     float64 `json:"ceded_premium"`
	CededClaims      float64 `json:"ceded_claims"`
	LossRatio        float64 `json:"loss_ratio"`
	ProfitCommission float64 `json:"profit_commission"`
}

// PeriodResult is one row of a multi-period cashflow analysis. Profit
// commission is evaluated against cumulative ceded figures up to and
// including this period; the loss ratio is the period's own.
type PeriodResult struct {
	Period               string  `json:"period"`
	GrossPremium         float64 `json:"gross_premium"`
	CededPremium         float64 `json:"ceded_premium"`
	RetainedPremium      float64 `json:"retained_premium"`
	CedingCommission     float64 `json:"ceding_commission"`
	GrossClaims          float64 `json:"gross_claims"`
	ReinsurerClaims      float64 `json:"reinsurer_claims"`
	CedantClaims         float64 `json:"cedant_claims"`
	ProfitCommission     float64 `json:"profit_commission"`
	ReinsurerNetPosition float64 `json:"reinsurer_net_position"`
	LossRatio            float64 `json:"loss_ratio"`
}
