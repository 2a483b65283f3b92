package samplesort

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/samplesort/internal/record"
	"github.com/dreamware/samplesort/internal/transport"
)

// runGroup executes a full run with k goroutine ranks over the in-memory
// network, input taken from the given lines, and returns the output
// records.
func runGroup(t *testing.T, k int, lines []string) []record.Record {
	t.Helper()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	require.NoError(t, os.WriteFile(input, []byte(content), 0o644))

	network := transport.NewNetwork(k)
	errs := make([]error, k)
	var wg sync.WaitGroup
	for rank := 0; rank < k; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			errs[rank] = Run(context.Background(), Config{
				Rank:       rank,
				Size:       k,
				Transport:  network.Transport(rank),
				InputPath:  input,
				OutputPath: output,
			})
		}(rank)
	}
	wg.Wait()
	for rank, err := range errs {
		require.NoError(t, err, "rank %d", rank)
	}

	got, err := record.ReadFile(output)
	require.NoError(t, err)
	return got
}

// TestRunConcreteScenario is the worked example: four records over two
// processes concatenate to the fully sorted dataset.
func TestRunConcreteScenario(t *testing.T) {
	got := runGroup(t, 2, []string{"TT", "AA", "GG", "CC"})
	assert.Equal(t, []record.Record{"AA", "CC", "GG", "TT"}, got)
}

// TestRunUnevenSplit verifies a dataset that does not divide evenly over
// the group: only the final global order matters, not partition sizes.
func TestRunUnevenSplit(t *testing.T) {
	got := runGroup(t, 2, []string{"GA", "TC", "AA", "CG", "AT"})
	assert.Equal(t, []record.Record{"AA", "AT", "CG", "GA", "TC"}, got)
}

// TestRunSkewedData verifies an all-identical dataset: pivot selection
// degenerates completely, yet the run must finish and conserve records.
func TestRunSkewedData(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "AAAA"
	}
	got := runGroup(t, 4, lines)
	require.Len(t, got, 100)
	for _, r := range got {
		assert.Equal(t, record.Record("AAAA"), r)
	}
}

// TestRunEmptyInput verifies that zero records flow through every phase
// without failing.
func TestRunEmptyInput(t *testing.T) {
	got := runGroup(t, 3, nil)
	assert.Empty(t, got)
}

// TestRunSingleProcess verifies that a group of one degenerates to a
// plain lexicographic sort with no communication at all.
func TestRunSingleProcess(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(input, []byte("TT\nAC\nGG\nAA\n"), 0o644))

	err := Run(context.Background(), Config{
		Rank:       0,
		Size:       1,
		InputPath:  input,
		OutputPath: output,
	})
	require.NoError(t, err)

	got, err := record.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, []record.Record{"AA", "AC", "GG", "TT"}, got)
}

// TestRunFewerRecordsThanRanks exercises the short-partition edge: some
// ranks own nothing at various phases.
func TestRunFewerRecordsThanRanks(t *testing.T) {
	got := runGroup(t, 4, []string{"GG", "AA"})
	assert.Equal(t, []record.Record{"AA", "GG"}, got)
}

// TestRunRandomized is the conservation and global-order property on
// random data: the output is the sorted permutation of the input.
func TestRunRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const alphabet = "ACGT"
	lines := make([]string, 500)
	for i := range lines {
		n := 1 + rng.Intn(20)
		var sb strings.Builder
		for j := 0; j < n; j++ {
			sb.WriteByte(alphabet[rng.Intn(4)])
		}
		lines[i] = sb.String()
	}

	got := runGroup(t, 4, lines)
	require.Len(t, got, len(lines))
	assert.True(t, record.IsSorted(got), "output is not globally sorted")

	want := make([]record.Record, len(lines))
	for i, l := range lines {
		want[i] = record.Record(l)
	}
	record.Sort(want)
	assert.Equal(t, want, got, "output is not the sorted input multiset")
}

// TestRunIdempotent verifies that re-sorting an already-sorted output
// changes nothing.
func TestRunIdempotent(t *testing.T) {
	first := runGroup(t, 3, []string{"TG", "CA", "AT", "GC", "AA", "TT"})

	lines := make([]string, len(first))
	for i, r := range first {
		lines[i] = string(r)
	}
	second := runGroup(t, 3, lines)
	assert.Equal(t, first, second)
}

// TestRunTimingHook verifies the optional observability hook fires for
// each instrumented phase on the coordinator and stays silent when
// unset.
func TestRunTimingHook(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(input, []byte("CC\nAA\n"), 0o644))

	phases := make(map[string]time.Duration)
	err := Run(context.Background(), Config{
		Rank:       0,
		Size:       1,
		InputPath:  input,
		OutputPath: output,
		OnPhase: func(phase string, elapsed time.Duration) {
			phases[phase] = elapsed
		},
	})
	require.NoError(t, err)
	assert.Contains(t, phases, "local_sort")
	assert.Contains(t, phases, "final_sort")
	assert.Contains(t, phases, "total")
}

// TestRunConfigValidation covers the fatal misconfigurations.
func TestRunConfigValidation(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, Run(ctx, Config{Rank: 0, Size: 0}))
	assert.Error(t, Run(ctx, Config{Rank: 2, Size: 2, Transport: transport.NewNetwork(2).Transport(0)}))
	assert.Error(t, Run(ctx, Config{Rank: 0, Size: 2})) // no transport for a real group
}

// TestRunMissingInput verifies that an unreadable input aborts the run
// before any communication happens.
func TestRunMissingInput(t *testing.T) {
	err := Run(context.Background(), Config{
		Rank:       0,
		Size:       1,
		InputPath:  filepath.Join(t.TempDir(), "missing.txt"),
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
	})
	assert.Error(t, err)
}
