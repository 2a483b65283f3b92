package samplesort

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dreamware/samplesort/internal/cluster"
	"github.com/dreamware/samplesort/internal/record"
	"github.com/dreamware/samplesort/internal/transport"
)

// Config describes one process's view of a run.
type Config struct {
	// Transport connects this process to the rest of the group. It may
	// be nil only for a single-process group, which never communicates.
	Transport transport.Transport

	// InputPath and OutputPath are the two run parameters. Every process
	// receives them, but only the coordinator ever opens either file.
	InputPath  string
	OutputPath string

	// OnPhase, when set, observes phase timings ("local_sort",
	// "final_sort", "total"). It is a diagnostic side channel, not part
	// of the correctness contract; tests leave it nil.
	OnPhase func(phase string, elapsed time.Duration)

	Rank int // this process's index in [0, Size)
	Size int // fixed group size k, k >= 1
}

func (cfg Config) validate() error {
	if cfg.Size < 1 {
		return fmt.Errorf("group size %d, must be at least 1", cfg.Size)
	}
	if cfg.Rank < 0 || cfg.Rank >= cfg.Size {
		return fmt.Errorf("rank %d outside group of size %d", cfg.Rank, cfg.Size)
	}
	if cfg.Transport == nil && cfg.Size > 1 {
		return fmt.Errorf("no transport for group of size %d", cfg.Size)
	}
	return nil
}

func (cfg Config) emit(phase string, elapsed time.Duration) {
	if cfg.OnPhase != nil {
		cfg.OnPhase(phase, elapsed)
	}
}

// Run executes the full protocol for one process and blocks until the
// run reaches DONE or fails. Every process of the group must call Run
// with the same size and a distinct rank; a missing participant stalls
// the group on its first collective phase, which is why cancellation via
// ctx is the only way out of a broken group.
//
// On the coordinator, Run reads the input file before the first phase
// and writes the output file after the last; any file or protocol error
// is fatal for the whole run.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	tp := cfg.Transport
	rank, size := cfg.Rank, cfg.Size
	coord := cluster.IsCoordinator(rank)

	// SCATTER: the coordinator reads the full dataset once and deals out
	// even shares, the first n mod k ranks receiving one extra record.
	var (
		local   []record.Record
		inputN  int
		started time.Time
	)
	if coord {
		all, err := record.ReadFile(cfg.InputPath)
		if err != nil {
			return err
		}
		inputN = len(all)
		started = time.Now()

		shares := shareCounts(inputN, size)
		offset := shares[0]
		local = all[:shares[0]]
		for p := 1; p < size; p++ {
			if err := sendRecords(ctx, tp, p, tagScatter, all[offset:offset+shares[p]]); err != nil {
				return err
			}
			offset += shares[p]
		}
	} else {
		var err error
		if local, err = recvRecords(ctx, tp, cluster.CoordinatorRank, tagScatter); err != nil {
			return err
		}
	}

	// LOCAL_SORT
	sortStart := time.Now()
	record.Sort(local)
	cfg.emit("local_sort", time.Since(sortStart))

	// SAMPLE / SAMPLE_COLLECT / PIVOT_SELECT / PIVOT_BROADCAST
	samples := Sample(local, size-1)
	var pivots []record.Record
	if coord {
		pool := samples
		for p := 1; p < size; p++ {
			got, err := recvRecords(ctx, tp, p, tagSamples)
			if err != nil {
				return err
			}
			pool = append(pool, got...)
		}
		pivots = SelectPivots(pool, size)
		warnSkewedPivots(pool, pivots, size)
		for p := 1; p < size; p++ {
			if err := sendRecords(ctx, tp, p, tagPivots, pivots); err != nil {
				return err
			}
		}
	} else {
		if err := sendRecords(ctx, tp, cluster.CoordinatorRank, tagSamples, samples); err != nil {
			return err
		}
		var err error
		if pivots, err = recvRecords(ctx, tp, cluster.CoordinatorRank, tagPivots); err != nil {
			return err
		}
	}

	// PARTITION / EXCHANGE
	buckets := SplitByPivots(local, pivots, size)
	final := buckets[rank]
	if size > 1 {
		var err error
		if final, err = exchange(ctx, tp, rank, size, buckets); err != nil {
			return err
		}
	}

	// FINAL_SORT
	sortStart = time.Now()
	record.Sort(final)
	cfg.emit("final_sort", time.Since(sortStart))

	// GATHER: counts in rank order, then payloads in rank order, then
	// one concatenated write. The coordinator checks conservation
	// against the input count before writing anything.
	if coord {
		counts := make([]int, size)
		counts[cluster.CoordinatorRank] = len(final)
		total := len(final)
		for p := 1; p < size; p++ {
			n, err := recvCount(ctx, tp, p, tagGatherCount)
			if err != nil {
				return err
			}
			counts[p] = n
			total += n
		}
		if total != inputN {
			return fmt.Errorf("gather: %d records in, %d out: %w", inputN, total, ErrCountMismatch)
		}

		out := make([]record.Record, 0, total)
		out = append(out, final...)
		for p := 1; p < size; p++ {
			if counts[p] == 0 {
				continue
			}
			records, err := recvRecords(ctx, tp, p, tagGatherData)
			if err != nil {
				return err
			}
			if len(records) != counts[p] {
				return fmt.Errorf("gather: rank %d announced %d records, delivered %d: %w",
					p, counts[p], len(records), ErrCountMismatch)
			}
			out = append(out, records...)
		}
		if err := record.WriteFile(cfg.OutputPath, out); err != nil {
			return err
		}
		cfg.emit("total", time.Since(started))
	} else {
		if err := sendCount(ctx, tp, cluster.CoordinatorRank, tagGatherCount, len(final)); err != nil {
			return err
		}
		if len(final) > 0 {
			if err := sendRecords(ctx, tp, cluster.CoordinatorRank, tagGatherData, final); err != nil {
				return err
			}
		}
	}
	return nil
}

// shareCounts splits n records over k ranks: n/k each, with the first
// n mod k ranks receiving one extra record.
func shareCounts(n, k int) []int {
	counts := make([]int, k)
	for p := range counts {
		counts[p] = n / k
		if p < n%k {
			counts[p]++
		}
	}
	return counts
}

// warnSkewedPivots flags the known load-balance gap: a process whose
// local partition is smaller than k-1 contributes fewer samples, which
// can leave the pool short or make pivots repeat. Neither breaks the
// sorted result, but bucket sizes may skew badly, so the condition is
// reported instead of silently accepted.
func warnSkewedPivots(pool, pivots []record.Record, k int) {
	if k <= 1 {
		return
	}
	if len(pool) < k-1 {
		log.Printf("rank[0] pivot selection: only %d samples for %d processes; bucket sizes may skew", len(pool), k)
		return
	}
	if d := distinct(pivots); d < len(pivots) {
		log.Printf("rank[0] pivot selection: %d duplicate pivots among %d; bucket sizes may skew", len(pivots)-d, len(pivots))
	}
}
