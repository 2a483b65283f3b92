package samplesort

import (
	"sort"

	"github.com/dreamware/samplesort/internal/record"
)

// DestinationFor returns the rank that owns a record under the given
// pivot set: the smallest pivot index whose value is strictly greater
// than the record, or len(pivots) when no pivot exceeds it. A record
// equal to a pivot therefore routes to the bucket after that pivot,
// keeping the half-open ranges [pivot[d-1], pivot[d]).
func DestinationFor(r record.Record, pivots []record.Record) int {
	return sort.Search(len(pivots), func(i int) bool { return pivots[i] > r })
}

// SplitByPivots assigns every record of a partition to its destination
// bucket. The result always has k buckets; with zero pivots (k = 1, or
// an empty sample pool) every record lands in bucket 0.
//
// The union of the buckets is exactly the input partition: nothing is
// created, dropped, or duplicated here.
func SplitByPivots(partition []record.Record, pivots []record.Record, k int) [][]record.Record {
	buckets := make([][]record.Record, k)
	for _, r := range partition {
		d := DestinationFor(r, pivots)
		buckets[d] = append(buckets[d], r)
	}
	return buckets
}
