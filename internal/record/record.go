package record

import (
	"golang.org/x/exp/slices"
)

// MaxLength bounds the byte length of a single record. Input lines and
// decoded wire payloads beyond this length are rejected.
const MaxLength = 256

// Record is one sortable unit of text data: a single line from the input
// file. Ordering and equality are byte-wise lexicographic, which Go's
// native string comparison already provides. Records carry no identity
// beyond their value; duplicates are indistinguishable.
type Record string

// Sort orders a partition in non-decreasing lexicographic order in place.
// Equal records may be reordered arbitrarily (no stability guarantee).
func Sort(partition []Record) {
	slices.Sort(partition)
}

// IsSorted reports whether a partition is in non-decreasing order.
func IsSorted(partition []Record) bool {
	return slices.IsSorted(partition)
}
