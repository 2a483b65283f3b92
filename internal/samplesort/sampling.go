package samplesort

import (
	"github.com/dreamware/samplesort/internal/record"
)

// Sample extracts up to s evenly-spaced representative records from a
// sorted partition of size n, at indices ⌊i·n/(s+1)⌋ for i = 1..s.
//
// Evenly-spaced samples from each process's sorted data approximate the
// global distribution without a global sort. An index that falls outside
// a short partition is skipped, so a process whose partition is smaller
// than s simply contributes fewer samples; the coordinator must not
// assume exactly s samples per process.
func Sample(sorted []record.Record, s int) []record.Record {
	n := len(sorted)
	var samples []record.Record
	for i := 1; i <= s; i++ {
		idx := i * n / (s + 1)
		if idx < n {
			samples = append(samples, sorted[idx])
		}
	}
	return samples
}

// SelectPivots merges the sample pool gathered from all processes and
// picks the k-1 boundary values that route records to destination ranks:
// pivot[i] = sorted_pool[⌊(i+1)·m/k⌋] for i = 0..k-2, where m is the
// pool size.
//
// The returned pivots are non-decreasing. Duplicate pivots are possible
// when sample values repeat; that degrades bucket balance but not
// correctness. With k = 1 or an empty pool there are no pivots and every
// record stays on its current rank.
//
// This runs only on the coordinator and is the single point of global
// coordination.
func SelectPivots(pool []record.Record, k int) []record.Record {
	m := len(pool)
	if k <= 1 || m == 0 {
		return nil
	}

	sorted := make([]record.Record, m)
	copy(sorted, pool)
	record.Sort(sorted)

	pivots := make([]record.Record, 0, k-1)
	for i := 1; i < k; i++ {
		pivots = append(pivots, sorted[i*m/k])
	}
	return pivots
}

// distinct counts the distinct values in a sorted slice. The coordinator
// uses it to detect degenerate pivot sets worth warning about.
func distinct(sorted []record.Record) int {
	if len(sorted) == 0 {
		return 0
	}
	n := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			n++
		}
	}
	return n
}
