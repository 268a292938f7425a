package data

// Range is a half-open interval [Start, End) of instance indexes.
type Range struct {
	Start int
	End   int
}

// Len returns the number of instances covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition deterministically splits n instances into batchCount contiguous,
// near-equal ranges covering [0, n) exactly once and preserving instance
// order. The first n mod batchCount ranges receive one extra instance.
// Requesting more batches than instances fails with a BatchCountError.
func Partition(n, batchCount int) ([]Range, error) {
	if batchCount < 1 || batchCount > n {
		return nil, &BatchCountError{BatchCount: batchCount, InstanceCount: n}
	}
	ranges := make([]Range, batchCount)
	size := n / batchCount
	rem := n % batchCount
	start := 0
	for b := range ranges {
		end := start + size
		if b < rem {
			end++
		}
		ranges[b] = Range{Start: start, End: end}
		start = end
	}
	return ranges, nil
}
