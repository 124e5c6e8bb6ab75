package bootstrap

import "math/rand"

// Resample draws len(sample) observations with replacement from sample,
// gathers them in draw order into buf, and applies stat to the draw.
// buf must have the same length as sample. Duplicates are expected; in any
// one resample roughly 63.2% of the distinct originals appear at least once.
//
// Resample is reentrant: it is safe to call from multiple goroutines as long
// as each caller owns its rng and buf.
func Resample(rng *rand.Rand, sample []float64, buf []float64, stat Statistic) (float64, error) {
	n := len(sample)
	for i := 0; i < n; i++ {
		buf[i] = sample[rng.Intn(n)]
	}
	return stat(buf)
}
