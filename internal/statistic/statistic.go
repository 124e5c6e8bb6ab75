// Package statistic defines the financial statistics bootcli resamples:
// location and dispersion measures plus the risk measures (Sharpe ratio,
// historical Value-at-Risk, Expected Shortfall, maximum drawdown) commonly
// bootstrapped over return series. Every constructor returns a pure function
// compatible with the engine's Statistic contract.
package statistic

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Func is the engine-compatible statistic signature.
type Func = func(sample []float64) (float64, error)

// ErrEmptyTail is returned by ExpectedShortfall when a resample has no
// observations beyond the VaR threshold, which can happen for small samples
// and small tail probabilities. The engine surfaces it as a statistic
// failure; there is no NaN substitution.
var ErrEmptyTail = errors.New("statistic: no observations beyond the VaR threshold")

// ErrZeroVolatility is returned by Sharpe when a resample has zero return
// dispersion, leaving the ratio undefined.
var ErrZeroVolatility = errors.New("statistic: zero volatility in resample")

// Mean returns the arithmetic-mean statistic.
func Mean() Func {
	return func(sample []float64) (float64, error) {
		return stat.Mean(sample, nil), nil
	}
}

// StdDev returns the sample-standard-deviation statistic (n-1 denominator).
func StdDev() Func {
	return func(sample []float64) (float64, error) {
		return stat.StdDev(sample, nil), nil
	}
}

// MeanStdErr is the closed-form standard error of the mean, s/sqrt(n), used
// for the analytic-interval comparison path. It is a property of the original
// sample, not of the bootstrap distribution.
func MeanStdErr(sample []float64) float64 {
	if len(sample) < 2 {
		return math.NaN()
	}
	return stat.StdDev(sample, nil) / math.Sqrt(float64(len(sample)))
}

// Sharpe returns the annualized Sharpe ratio statistic over per-period
// returns: mean excess return over its standard deviation, scaled by
// sqrt(periodsPerYear). riskFree is the per-period risk-free rate, passed as
// a parameter rather than captured state so the statistic stays pure under
// parallel dispatch.
func Sharpe(riskFree, periodsPerYear float64) Func {
	scale := math.Sqrt(periodsPerYear)
	return func(sample []float64) (float64, error) {
		excess := make([]float64, len(sample))
		for i, r := range sample {
			excess[i] = r - riskFree
		}

		mean, sd := stat.MeanStdDev(excess, nil)
		if sd == 0 || math.IsNaN(sd) {
			return 0, ErrZeroVolatility
		}
		return scale * mean / sd, nil
	}
}

// ValueAtRisk returns the historical VaR statistic at tail probability alpha:
// the negated empirical alpha-quantile of returns, so a positive value is a
// loss. Quantiles use the same linear interpolation as the engine's
// percentile intervals.
func ValueAtRisk(alpha float64) (Func, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("statistic: alpha must be in (0,1), got %g", alpha)
	}

	return func(sample []float64) (float64, error) {
		sorted := append([]float64(nil), sample...)
		sort.Float64s(sorted)
		return -stat.Quantile(alpha, stat.LinInterp, sorted, nil), nil
	}, nil
}

// ExpectedShortfall returns the historical ES statistic at tail probability
// alpha: the mean loss over observations strictly below the VaR threshold.
// A resample whose tail set is empty yields ErrEmptyTail.
func ExpectedShortfall(alpha float64) (Func, error) {
	if alpha <= 0 || alpha >= 1 {
		return nil, fmt.Errorf("statistic: alpha must be in (0,1), got %g", alpha)
	}

	return func(sample []float64) (float64, error) {
		sorted := append([]float64(nil), sample...)
		sort.Float64s(sorted)
		threshold := stat.Quantile(alpha, stat.LinInterp, sorted, nil)

		sum, count := 0.0, 0
		for _, r := range sorted {
			if r >= threshold {
				break
			}
			sum += r
			count++
		}
		if count == 0 {
			return 0, ErrEmptyTail
		}
		return -sum / float64(count), nil
	}, nil
}

// MaxDrawdown returns the maximum peak-to-trough drawdown statistic over the
// cumulative growth path implied by per-period returns, as a positive
// fraction of the peak.
func MaxDrawdown() Func {
	return func(sample []float64) (float64, error) {
		equity := 1.0
		peak := 1.0
		maxDD := 0.0

		for _, r := range sample {
			equity *= 1 + r
			if equity > peak {
				peak = equity
			}
			if peak > 0 {
				if dd := (peak - equity) / peak; dd > maxDD {
					maxDD = dd
				}
			}
		}

		return maxDD, nil
	}
}
