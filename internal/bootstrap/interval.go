package bootstrap

import (
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PercentileInterval returns the empirical confidence interval of the
// replicate distribution: the (1-level)/2 and 1-(1-level)/2 quantiles of the
// sorted estimates, with linear interpolation between order statistics.
// The input slice is not modified.
func PercentileInterval(estimates []float64, level float64) (Interval, error) {
	if len(estimates) == 0 {
		return Interval{}, errInput("estimates must not be empty")
	}
	if level <= 0 || level >= 1 {
		return Interval{}, errInput("confidence level must be in (0,1), got %g", level)
	}

	sorted := append([]float64(nil), estimates...)
	sort.Float64s(sorted)

	tail := (1 - level) / 2
	return Interval{
		Lower: stat.Quantile(tail, stat.LinInterp, sorted, nil),
		Upper: stat.Quantile(1-tail, stat.LinInterp, sorted, nil),
		Level: level,
	}, nil
}

// AnalyticInterval returns the normal-approximation confidence interval
// estimate ± z·stdErr, where z is the standard normal quantile for the given
// level. The standard error comes from a statistic-specific closed form
// supplied by the caller; the engine does not derive it.
func AnalyticInterval(estimate, stdErr, level float64) (Interval, error) {
	if level <= 0 || level >= 1 {
		return Interval{}, errInput("confidence level must be in (0,1), got %g", level)
	}
	if stdErr < 0 {
		return Interval{}, errInput("standard error must be >= 0, got %g", stdErr)
	}

	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	return Interval{
		Lower: estimate - z*stdErr,
		Upper: estimate + z*stdErr,
		Level: level,
	}, nil
}
