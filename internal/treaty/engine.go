package treaty

import (
	"errors"
	"fmt"

	"reinsurance-engine/internal/model"
)

// DefaultProfitCommissionThreshold is the loss ratio below which profit
// commission becomes payable when the terms leave the threshold unset.
const DefaultProfitCommissionThreshold = 0.65

var ErrInvalidTreatyTerms = errors.New("invalid treaty terms")

// Engine computes the financial mechanics of a proportional quota share
// treaty. Terms are frozen at construction and every method is a pure
// function over its inputs, so a single engine can serve concurrent
// callers without locking.
type Engine struct {
	terms model.TreatyTerms
}

// New validates the treaty terms and returns an engine bound to them.
// A zero ProfitCommissionThreshold is replaced by the default.
func New(terms model.TreatyTerms) (*Engine, error) {
	if terms.CessionRate < 0 || terms.CessionRate > 100 {
		return nil, fmt.Errorf("%w: cession rate must be between 0 and 100, got %v", ErrInvalidTreatyTerms, terms.CessionRate)
	}
	if terms.CommissionRate < 0 || terms.CommissionRate > 100 {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100, got %v", ErrInvalidTreatyTerms, terms.CommissionRate)
	}
	if terms.ProfitCommissionThreshold == 0 {
		terms.ProfitCommissionThreshold = DefaultProfitCommissionThreshold
	}
	return &Engine{terms: terms}, nil
}

func (e *Engine) Terms() model.TreatyTerms {
	return e.terms
}

// CalculatePremium splits one gross premium amount between cedant and
// reinsurer. Negative input is not rejected; it produces mathematically
// consistent negative output, and callers wanting strict validation must
// check upstream.
func (e *Engine) CalculatePremium(grossPremium float64) model.PremiumSplit {
	cededPremium := grossPremium * e.terms.CessionRate / 100
	cedingCommission := cededPremium * e.terms.CommissionRate / 100

	return model.PremiumSplit{
		GrossPremium:          grossPremium,
		CessionRate:           e.terms.CessionRate,
		CededPremium:          cededPremium,
		RetainedPremium:       grossPremium - cededPremium,
		CedingCommission:      cedingCommission,
		NetPremiumToReinsurer: cededPremium - cedingCommission,
		CommissionRate:        e.terms.CommissionRate,
	}
}

// CalculateClaims splits one gross claims amount. The annual aggregate
// limit, when set, caps the reinsurer share of this call only; across
// repeated calls the lifetime total can exceed the limit. The claims
// ratio is 0 by convention when gross claims are 0.
func (e *Engine) CalculateClaims(grossClaims float64) model.ClaimsSplit {
	reinsurerClaims := grossClaims * e.terms.CessionRate / 100
	if limit := e.terms.AnnualAggregateLimit; limit != nil && reinsurerClaims > *limit {
		reinsurerClaims = *limit
	}

	var claimsRatio float64
	if grossClaims > 0 {
		claimsRatio = reinsurerClaims / grossClaims * 100
	}

	return model.ClaimsSplit{
		GrossClaims:     grossClaims,
		ReinsurerClaims: reinsurerClaims,
		CedantClaims:    grossClaims - reinsurerClaims,
		ClaimsRatio:     claimsRatio,
	}
}

// CalculateProfitCommission returns the profit commission payable on the
// given ceded premium and claims figures. It is state-free: callers decide
// whether to pass single-period or cumulative amounts. Returns 0 when
// ceded premium is 0 or the loss ratio has reached the threshold.
func (e *Engine) CalculateProfitCommission(cededPremium, cededClaims float64) float64 {
	if cededPremium == 0 {
		return 0
	}

	lossRatio := cededClaims / cededPremium
	if lossRatio >= e.terms.ProfitCommissionThreshold {
		return 0
	}

	profitCommission := (cededPremium - cededClaims) * e.terms.ProfitCommissionRate / 100
	if profitCommission < 0 {
		return 0
	}
	return profitCommission
}

// GenerateCashflowAnalysis produces one PeriodResult per period, pairing
// the inputs positionally and truncating to the shortest sequence. Profit
// commission is evaluated each period against cumulative ceded premium and
// claims, so periods must be processed in order. With CumulativeLimit set,
// the aggregate limit caps the running reinsurer claims total instead of
// each period independently.
func (e *Engine) GenerateCashflowAnalysis(premiums, claims []float64, periods []string) []model.PeriodResult {
	n := len(periods)
	if len(premiums) < n {
		n = len(premiums)
	}
	if len(claims) < n {
		n = len(claims)
	}

	results := make([]model.PeriodResult, 0, n)
	var cumulativeCededPremium, cumulativeCededClaims float64

	for i := 0; i < n; i++ {
		premiumCalc := e.CalculatePremium(premiums[i])
		claimsCalc := e.CalculateClaims(claims[i])

		if e.terms.CumulativeLimit {
			claimsCalc = e.capCumulative(claimsCalc, cumulativeCededClaims)
		}

		cumulativeCededPremium += premiumCalc.CededPremium
		cumulativeCededClaims += claimsCalc.ReinsurerClaims

		profitCommission := e.CalculateProfitCommission(cumulativeCededPremium, cumulativeCededClaims)

		var lossRatio float64
		if premiumCalc.CededPremium > 0 {
			lossRatio = claimsCalc.ReinsurerClaims / premiumCalc.CededPremium * 100
		}

		results = append(results, model.PeriodResult{
			Period:               periods[i],
			GrossPremium:         premiumCalc.GrossPremium,
			CededPremium:         premiumCalc.CededPremium,
			RetainedPremium:      premiumCalc.RetainedPremium,
			CedingCommission:     premiumCalc.CedingCommission,
			GrossClaims:          claimsCalc.GrossClaims,
			ReinsurerClaims:      claimsCalc.ReinsurerClaims,
			CedantClaims:         claimsCalc.CedantClaims,
			ProfitCommission:     profitCommission,
			ReinsurerNetPosition: premiumCalc.NetPremiumToReinsurer - claimsCalc.ReinsurerClaims - profitCommission,
			LossRatio:            lossRatio,
		})
	}

	return results
}

// capCumulative shrinks a period's reinsurer share so that the running
// total never exceeds the aggregate limit, shifting the excess back to
// the cedant.
func (e *Engine) capCumulative(split model.ClaimsSplit, cumulativeCededClaims float64) model.ClaimsSplit {
	limit := e.terms.AnnualAggregateLimit
	if limit == nil || cumulativeCededClaims+split.ReinsurerClaims <= *limit {
		return split
	}

	remaining := *limit - cumulativeCededClaims
	if remaining < 0 {
		remaining = 0
	}

	split.ReinsurerClaims = remaining
	split.CedantClaims = split.GrossClaims - remaining
	split.ClaimsRatio = 0
	if split.GrossClaims > 0 {
		split.ClaimsRatio = remaining / split.GrossClaims * 100
	}
	return split
}
