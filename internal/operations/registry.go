package operations

var registry = map[string]OperationHandler{
	"bind_treaty":       &BindTreatyHandler{},
	"premium_split":     &PremiumSplitHandler{},
	"claims_split":      &ClaimsSplitHandler{},
	"profit_commission": &ProfitCommissionHandler{},
	"cashflow_analysis": &CashflowAnalysisHandler{},
}

func Get(name string) (OperationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
