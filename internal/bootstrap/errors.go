package bootstrap

import "fmt"

// InputError reports invalid run parameters. It is returned before any
// resampling begins; a run that fails this way consumed no randomness.
type InputError struct {
	Reason string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return "bootstrap: invalid input: " + e.Reason
}

// StatisticError reports that the statistic function failed on a particular
// resample. The whole run is aborted; there is no skipping or substitution,
// since a biased subset of replicates would corrupt the inferred distribution.
type StatisticError struct {
	Replicate int
	Err       error
}

// Error implements the error interface.
func (e *StatisticError) Error() string {
	return fmt.Sprintf("bootstrap: statistic failed on replicate %d: %v", e.Replicate, e.Err)
}

// Unwrap returns the underlying statistic failure.
func (e *StatisticError) Unwrap() error {
	return e.Err
}

// WorkerError reports that a parallel worker terminated abnormally for a
// reason unrelated to the statistic, such as a recovered panic. Callers can
// distinguish it from StatisticError to decide whether retrying with fewer
// workers is sensible.
type WorkerError struct {
	Worker int
	Err    error
}

// Error implements the error interface.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("bootstrap: worker %d failed: %v", e.Worker, e.Err)
}

// Unwrap returns the underlying worker failure.
func (e *WorkerError) Unwrap() error {
	return e.Err
}

func errInput(format string, args ...any) error {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}
