package statistic

import "fmt"

// Params carries the tunable parameters a named statistic may need. Zero
// values select the documented defaults.
type Params struct {
	// Alpha is the tail probability for VaR and Expected Shortfall.
	// Defaults to 0.05.
	Alpha float64 `json:"alpha,omitempty"`
	// RiskFree is the per-period risk-free rate for the Sharpe ratio.
	RiskFree float64 `json:"risk_free,omitempty"`
	// PeriodsPerYear annualizes the Sharpe ratio. Defaults to 252
	// (daily trading periods).
	PeriodsPerYear float64 `json:"periods_per_year,omitempty"`
}

// Info describes a registered statistic for catalog listings.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params,omitempty"`
	// AnalyticSE reports whether a closed-form standard error is available
	// for the analytic confidence interval.
	AnalyticSE bool `json:"analytic_se"`
}

const (
	defaultAlpha          = 0.05
	defaultPeriodsPerYear = 252
)

// Catalog lists the statistics addressable by name through Build, in the
// order they are reported to clients.
func Catalog() []Info {
	return []Info{
		{Name: "mean", Description: "arithmetic mean return", AnalyticSE: true},
		{Name: "stddev", Description: "sample standard deviation of returns"},
		{Name: "sharpe", Description: "annualized Sharpe ratio", Params: []string{"risk_free", "periods_per_year"}},
		{Name: "var", Description: "historical Value-at-Risk", Params: []string{"alpha"}},
		{Name: "es", Description: "historical Expected Shortfall", Params: []string{"alpha"}},
		{Name: "maxdrawdown", Description: "maximum peak-to-trough drawdown"},
	}
}

// Build resolves a statistic by catalog name, applying parameter defaults.
func Build(name string, p Params) (Func, error) {
	if p.Alpha == 0 {
		p.Alpha = defaultAlpha
	}
	if p.PeriodsPerYear == 0 {
		p.PeriodsPerYear = defaultPeriodsPerYear
	}

	switch name {
	case "mean":
		return Mean(), nil
	case "stddev":
		return StdDev(), nil
	case "sharpe":
		return Sharpe(p.RiskFree, p.PeriodsPerYear), nil
	case "var":
		return ValueAtRisk(p.Alpha)
	case "es":
		return ExpectedShortfall(p.Alpha)
	case "maxdrawdown":
		return MaxDrawdown(), nil
	default:
		return nil, fmt.Errorf("statistic: unknown statistic %q", name)
	}
}
