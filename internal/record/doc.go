// Package record defines the unit of data the whole system moves around:
// a variable-length text record with byte-wise lexicographic ordering.
//
// The package owns everything that touches a record's representation:
// the in-memory type and its sort order, the one-record-per-line file
// format shared with the external producer and the baseline sorter, and
// the length-prefixed wire codec used for every point-to-point transfer.
// Decoding failures are fatal protocol errors; there is no
// partial-message recovery anywhere in the system.
package record
