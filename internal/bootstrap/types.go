package bootstrap

// Statistic maps a sample to a single scalar estimate. Implementations must
// be pure: no mutable external state, all inputs through the slice argument.
// The slice is a scratch buffer owned by the engine and must not be retained
// after the call returns.
type Statistic func(sample []float64) (float64, error)

// Result is the outcome of a bootstrap run. Estimates holds one value per
// resample, in engine order; Mean and StdErr summarize that distribution.
// StdErr is NaN when fewer than two replicates were requested.
type Result struct {
	Mean      float64   `json:"mean"`
	StdErr    float64   `json:"std_err"`
	Estimates []float64 `json:"estimates"`
}

// Interval is a two-sided confidence interval at the given level.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Level float64 `json:"level"`
}

// Width returns the distance between the interval bounds.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Contains reports whether x lies inside the interval (bounds inclusive).
func (iv Interval) Contains(x float64) bool {
	return x >= iv.Lower && x <= iv.Upper
}
