package samplesort

import (
	"context"
	"fmt"

	"github.com/dreamware/samplesort/internal/record"
	"github.com/dreamware/samplesort/internal/transport"
)

// One tag per protocol phase that moves data. Count and payload travel
// under distinct tags so a receiver always waits for exactly the frame
// the phase sequence says comes next.
const (
	tagScatter       transport.Tag = "scatter"
	tagSamples       transport.Tag = "samples"
	tagPivots        transport.Tag = "pivots"
	tagExchangeCount transport.Tag = "exchange.count"
	tagExchangeData  transport.Tag = "exchange.data"
	tagGatherCount   transport.Tag = "gather.count"
	tagGatherData    transport.Tag = "gather.data"
)

func sendRecords(ctx context.Context, tp transport.Transport, to int, tag transport.Tag, records []record.Record) error {
	payload, err := record.EncodeBatch(records)
	if err != nil {
		return fmt.Errorf("%s to rank %d: %w", tag, to, err)
	}
	return tp.Send(ctx, to, tag, payload)
}

func recvRecords(ctx context.Context, tp transport.Transport, from int, tag transport.Tag) ([]record.Record, error) {
	payload, err := tp.Recv(ctx, from, tag)
	if err != nil {
		return nil, err
	}
	records, err := record.DecodeBatch(payload)
	if err != nil {
		return nil, fmt.Errorf("%s from rank %d: %w", tag, from, err)
	}
	return records, nil
}

func sendCount(ctx context.Context, tp transport.Transport, to int, tag transport.Tag, n int) error {
	return tp.Send(ctx, to, tag, record.EncodeCount(n))
}

func recvCount(ctx context.Context, tp transport.Transport, from int, tag transport.Tag) (int, error) {
	payload, err := tp.Recv(ctx, from, tag)
	if err != nil {
		return 0, err
	}
	n, err := record.DecodeCount(payload)
	if err != nil {
		return 0, fmt.Errorf("%s from rank %d: %w", tag, from, err)
	}
	return n, nil
}
