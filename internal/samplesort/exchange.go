package samplesort

import (
	"context"
	"errors"
	"fmt"

	"github.com/dreamware/samplesort/internal/record"
	"github.com/dreamware/samplesort/internal/transport"
)

// ErrCountMismatch is returned when a peer delivers a different number of
// records than it announced, or when the gathered total differs from the
// input total. Either way the protocol state is unrecoverable and the
// run aborts.
var ErrCountMismatch = errors.New("record count mismatch")

// exchange performs the all-to-all redistribution of bucketed records:
// the only phase with O(k²) communication fan-out.
//
// The count round completes for every peer before any payload transfer
// begins, so payload receive sizes are always known up front and no
// pairing of send and receive can deadlock. The bucket a process routes
// to itself moves directly into the result and never touches the
// transport. Payloads are only sent for non-empty buckets; the receiver
// skips peers that announced zero.
func exchange(ctx context.Context, tp transport.Transport, rank, size int, buckets [][]record.Record) ([]record.Record, error) {
	for p := 0; p < size; p++ {
		if p == rank {
			continue
		}
		if err := sendCount(ctx, tp, p, tagExchangeCount, len(buckets[p])); err != nil {
			return nil, err
		}
	}

	incoming := make([]int, size)
	total := len(buckets[rank])
	for p := 0; p < size; p++ {
		if p == rank {
			continue
		}
		n, err := recvCount(ctx, tp, p, tagExchangeCount)
		if err != nil {
			return nil, err
		}
		incoming[p] = n
		total += n
	}

	merged := make([]record.Record, 0, total)
	merged = append(merged, buckets[rank]...)

	for p := 0; p < size; p++ {
		if p == rank || len(buckets[p]) == 0 {
			continue
		}
		if err := sendRecords(ctx, tp, p, tagExchangeData, buckets[p]); err != nil {
			return nil, err
		}
	}
	for p := 0; p < size; p++ {
		if p == rank || incoming[p] == 0 {
			continue
		}
		records, err := recvRecords(ctx, tp, p, tagExchangeData)
		if err != nil {
			return nil, err
		}
		if len(records) != incoming[p] {
			return nil, fmt.Errorf("exchange: rank %d announced %d records, delivered %d: %w",
				p, incoming[p], len(records), ErrCountMismatch)
		}
		merged = append(merged, records...)
	}
	return merged, nil
}
