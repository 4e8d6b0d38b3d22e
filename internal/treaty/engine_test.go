package treaty

import (
	"errors"
	"math"
	"testing"

	"reinsurance-engine/internal/model"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s: got %v, want %v", name, got, want)
	}
}

func limitOf(v float64) *float64 {
	return &v
}

func standardTreaty(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(model.TreatyTerms{
		CessionRate:               50,
		CommissionRate:            30,
		ProfitCommissionRate:      20,
		ProfitCommissionThreshold: 0.60,
		AnnualAggregateLimit:      limitOf(10_000_000),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return eng
}

func TestNewRejectsOutOfRangeRates(t *testing.T) {
	_, err := New(model.TreatyTerms{CessionRate: 150, CommissionRate: 30})
	if !errors.Is(err, ErrInvalidTreatyTerms) {
		t.Fatalf("expected ErrInvalidTreatyTerms for cession rate 150, got %v", err)
	}

	_, err = New(model.TreatyTerms{CessionRate: 50, CommissionRate: -5})
	if !errors.Is(err, ErrInvalidTreatyTerms) {
		t.Fatalf("expected ErrInvalidTreatyTerms for commission rate -5, got %v", err)
	}

	if _, err := New(model.TreatyTerms{CessionRate: 50, CommissionRate: 30}); err != nil {
		t.Fatalf("expected valid terms to succeed, got %v", err)
	}
}

func TestNewDefaultsProfitCommissionThreshold(t *testing.T) {
	eng, err := New(model.TreatyTerms{CessionRate: 50, CommissionRate: 30})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	approx(t, "threshold", eng.Terms().ProfitCommissionThreshold, DefaultProfitCommissionThreshold)
}

func TestCalculatePremium(t *testing.T) {
	eng := standardTreaty(t)

	split := eng.CalculatePremium(1_000_000)

	approx(t, "ceded_premium", split.CededPremium, 500_000)
	approx(t, "ceding_commission", split.CedingCommission, 150_000)
	approx(t, "net_premium_to_reinsurer", split.NetPremiumToReinsurer, 350_000)
	approx(t, "retained_premium", split.RetainedPremium, 500_000)
	approx(t, "cession_rate", split.CessionRate, 50)
	approx(t, "commission_rate", split.CommissionRate, 30)
}

func TestCalculatePremiumIdentities(t *testing.T) {
	eng := standardTreaty(t)

	for _, gross := range []float64{0, 1, 12_345.67, 2_500_000, 99_999_999} {
		split := eng.CalculatePremium(gross)
		approx(t, "ceded+retained", split.CededPremium+split.RetainedPremium, gross)
		approx(t, "net+commission", split.NetPremiumToReinsurer+split.CedingCommission, split.CededPremium)
	}
}

func TestCalculatePremiumIdempotent(t *testing.T) {
	eng := standardTreaty(t)

	first := eng.CalculatePremium(1_000_000)
	second := eng.CalculatePremium(1_000_000)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCalculateClaims(t *testing.T) {
	eng, err := New(model.TreatyTerms{CessionRate: 50, CommissionRate: 30})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	split := eng.CalculateClaims(800_000)
	approx(t, "reinsurer_claims", split.ReinsurerClaims, 400_000)
	approx(t, "cedant_claims", split.CedantClaims, 400_000)
	approx(t, "claims_ratio", split.ClaimsRatio, 50)
	approx(t, "reinsurer+cedant", split.ReinsurerClaims+split.CedantClaims, 800_000)
}

func TestCalculateClaimsZeroGross(t *testing.T) {
	eng := standardTreaty(t)

	split := eng.CalculateClaims(0)
	approx(t, "claims_ratio", split.ClaimsRatio, 0)
	approx(t, "reinsurer_claims", split.ReinsurerClaims, 0)
}

func TestCalculateClaimsAggregateLimit(t *testing.T) {
	eng, err := New(model.TreatyTerms{
		CessionRate:          50,
		CommissionRate:       30,
		AnnualAggregateLimit: limitOf(1_000_000),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	split := eng.CalculateClaims(4_000_000)
	approx(t, "reinsurer_claims", split.ReinsurerClaims, 1_000_000)
	approx(t, "cedant_claims", split.CedantClaims, 3_000_000)

	// The cap is per call: a second identical call gets the full limit again.
	again := eng.CalculateClaims(4_000_000)
	approx(t, "reinsurer_claims second call", again.ReinsurerClaims, 1_000_000)
}

func TestProfitCommissionZeroPremium(t *testing.T) {
	eng := standardTreaty(t)

	if pc := eng.CalculateProfitCommission(0, 500_000); pc != 0 {
		t.Fatalf("expected 0 profit commission on zero premium, got %v", pc)
	}
}

func TestProfitCommissionAtOrAboveThreshold(t *testing.T) {
	eng := standardTreaty(t)

	// Loss ratio exactly at the threshold pays nothing.
	if pc := eng.CalculateProfitCommission(1_000_000, 600_000); pc != 0 {
		t.Fatalf("expected 0 at threshold, got %v", pc)
	}
	if pc := eng.CalculateProfitCommission(1_000_000, 900_000); pc != 0 {
		t.Fatalf("expected 0 above threshold, got %v", pc)
	}
}

func TestProfitCommissionPayable(t *testing.T) {
	eng := standardTreaty(t)

	// Loss ratio 0.2, profit 800k, 20% share.
	pc := eng.CalculateProfitCommission(1_000_000, 200_000)
	approx(t, "profit_commission", pc, 160_000)
}

func TestProfitCommissionNegativeRateClamped(t *testing.T) {
	eng, err := New(model.TreatyTerms{
		CessionRate:          50,
		CommissionRate:       30,
		ProfitCommissionRate: -10,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if pc := eng.CalculateProfitCommission(1_000_000, 200_000); pc != 0 {
		t.Fatalf("expected negative rate to clamp to 0, got %v", pc)
	}
}

func TestGenerateCashflowAnalysisQuarterly(t *testing.T) {
	eng := standardTreaty(t)

	periods := []string{"Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024"}
	premiums := []float64{2_500_000, 3_000_000, 2_800_000, 3_200_000}
	claims := []float64{1_500_000, 1_800_000, 2_100_000, 1_900_000}

	results := eng.GenerateCashflowAnalysis(premiums, claims, periods)

	if len(results) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(results))
	}
	for i, r := range results {
		if r.Period != periods[i] {
			t.Fatalf("period %d: got label %q, want %q", i, r.Period, periods[i])
		}
	}

	// Cumulative ceded premium after Q2 is the sum of Q1 and Q2 cessions.
	approx(t, "cumulative ceded premium Q1+Q2", results[0].CededPremium+results[1].CededPremium, 2_750_000)

	// Per-period loss ratios: reinsurer claims over ceded premium.
	for _, r := range results {
		approx(t, "loss_ratio period "+r.Period, r.LossRatio, r.ReinsurerClaims/r.CededPremium*100)
	}
	approx(t, "Q1 loss_ratio", results[0].LossRatio, 60)
	approx(t, "Q3 loss_ratio", results[2].LossRatio, 75)

	// Cumulative loss ratio never drops below the 60% threshold in this
	// scenario, so no period pays profit commission.
	for i, r := range results {
		if r.ProfitCommission != 0 {
			t.Fatalf("period %d: expected 0 profit commission, got %v", i, r.ProfitCommission)
		}
	}

	approx(t, "Q1 net position", results[0].ReinsurerNetPosition, 125_000)
	approx(t, "Q3 net position", results[2].ReinsurerNetPosition, -70_000)
}

func TestGenerateCashflowAnalysisProfitCommissionGating(t *testing.T) {
	eng := standardTreaty(t)

	// Q1 runs clean (cumulative loss ratio 0.2), Q2 pushes the cumulative
	// ratio to 0.8 and shuts profit commission off.
	results := eng.GenerateCashflowAnalysis(
		[]float64{1_000_000, 1_000_000},
		[]float64{200_000, 1_400_000},
		[]string{"H1", "H2"},
	)

	if len(results) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(results))
	}
	approx(t, "H1 profit commission", results[0].ProfitCommission, 80_000)
	approx(t, "H2 profit commission", results[1].ProfitCommission, 0)
}

func TestGenerateCashflowAnalysisTruncatesToShortest(t *testing.T) {
	eng := standardTreaty(t)

	results := eng.GenerateCashflowAnalysis(
		[]float64{1_000_000, 1_000_000},
		[]float64{100_000, 200_000, 300_000, 400_000},
		[]string{"Q1", "Q2", "Q3"},
	)

	if len(results) != 2 {
		t.Fatalf("expected truncation to 2 periods, got %d", len(results))
	}
	if results[1].Period != "Q2" {
		t.Fatalf("expected last period Q2, got %s", results[1].Period)
	}
}

func TestGenerateCashflowAnalysisPerCallLimitExceedsLifetime(t *testing.T) {
	eng, err := New(model.TreatyTerms{
		CessionRate:          100,
		CommissionRate:       0,
		AnnualAggregateLimit: limitOf(1_000),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	results := eng.GenerateCashflowAnalysis(
		[]float64{10_000, 10_000},
		[]float64{800, 800},
		[]string{"P1", "P2"},
	)

	// Per-call capping lets the lifetime total pass the stated limit.
	approx(t, "P1 reinsurer claims", results[0].ReinsurerClaims, 800)
	approx(t, "P2 reinsurer claims", results[1].ReinsurerClaims, 800)
	approx(t, "lifetime total", results[0].ReinsurerClaims+results[1].ReinsurerClaims, 1_600)
}

func TestGenerateCashflowAnalysisCumulativeLimit(t *testing.T) {
	eng, err := New(model.TreatyTerms{
		CessionRate:          100,
		CommissionRate:       0,
		AnnualAggregateLimit: limitOf(1_000),
		CumulativeLimit:      true,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	results := eng.GenerateCashflowAnalysis(
		[]float64{10_000, 10_000, 10_000},
		[]float64{800, 800, 800},
		[]string{"P1", "P2", "P3"},
	)

	approx(t, "P1 reinsurer claims", results[0].ReinsurerClaims, 800)
	approx(t, "P2 reinsurer claims", results[1].ReinsurerClaims, 200)
	approx(t, "P2 cedant claims", results[1].CedantClaims, 600)
	approx(t, "P3 reinsurer claims", results[2].ReinsurerClaims, 0)
	approx(t, "P3 cedant claims", results[2].CedantClaims, 800)
}
