package bootstrap

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summarize reduces a replicate collection to its bootstrap summary: the
// arithmetic mean and the sample standard deviation (B-1 denominator) of the
// estimates. With a single replicate the standard error is NaN, since sample
// dispersion is undefined. The estimates slice is retained, not copied.
func Summarize(estimates []float64) *Result {
	if len(estimates) == 0 {
		return &Result{Mean: math.NaN(), StdErr: math.NaN()}
	}

	mean, stdErr := stat.MeanStdDev(estimates, nil)
	return &Result{
		Mean:      mean,
		StdErr:    stdErr,
		Estimates: estimates,
	}
}
