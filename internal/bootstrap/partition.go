package bootstrap

// Partition splits total units of work into parts chunks whose sizes differ
// by at most one and whose sum is exactly total. Callers must pass parts >= 1.
// When total < parts, trailing chunks are zero; ReplicateParallel caps the
// worker count at B so that never happens in practice.
func Partition(total, parts int) []int {
	chunks := make([]int, parts)
	base := total / parts
	rem := total % parts

	for i := range chunks {
		chunks[i] = base
		if i < rem {
			chunks[i]++
		}
	}

	return chunks
}
