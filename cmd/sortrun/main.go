// Package main implements sortrun, the launch surface for a sample-sort
// run: the stand-in for an external process-group runtime. It mints a run
// ID, lays out the group's addresses, starts one samplesort process per
// rank, and reports the group's combined exit status.
//
//	sortrun -n 4 input.txt output.txt
//	sortrun -n 4 -local input.txt output.txt
//
// With -local the ranks run as goroutines inside this process over the
// in-memory transport instead of as separate processes; the protocol is
// identical either way.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dreamware/samplesort/internal/cluster"
	"github.com/dreamware/samplesort/internal/samplesort"
	"github.com/dreamware/samplesort/internal/transport"
)

var logFatal = log.Fatalf

func main() {
	n := flag.Int("n", 2, "number of processes in the group")
	local := flag.Bool("local", false, "run all ranks as goroutines in this process")
	port := flag.Int("port", 29100, "first loopback port; rank i listens on port+i")
	bin := flag.String("bin", "", "samplesort binary (default: next to this executable, then $PATH)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <input-file> <output-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	if *n < 1 {
		logFatal("sortrun: -n %d, need at least 1 process", *n)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	if *local {
		if err := runLocal(*n, input, output); err != nil {
			logFatal("sortrun: %v", err)
		}
		return
	}
	if err := runProcesses(*n, *port, *bin, input, output); err != nil {
		logFatal("sortrun: %v", err)
	}
}

// runLocal executes all ranks as goroutines over the in-memory transport.
func runLocal(n int, input, output string) error {
	network := transport.NewNetwork(n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for rank := 0; rank < n; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			cfg := samplesort.Config{
				Rank:       rank,
				Size:       n,
				Transport:  network.Transport(rank),
				InputPath:  input,
				OutputPath: output,
			}
			if cluster.IsCoordinator(rank) {
				cfg.OnPhase = func(phase string, elapsed time.Duration) {
					log.Printf("sortrun: %s %v", phase, elapsed)
				}
			}
			errs[rank] = samplesort.Run(context.Background(), cfg)
		}(rank)
	}
	wg.Wait()

	for rank, err := range errs {
		if err != nil {
			return fmt.Errorf("rank %d: %w", rank, err)
		}
	}
	return nil
}

// runProcesses spawns one samplesort process per rank on consecutive
// loopback ports and waits for the whole group. The first failure fails
// the run; the remaining processes are left to abort on their own, since
// a group missing a member cannot make progress anyway.
func runProcesses(n, basePort int, bin, input, output string) error {
	path, err := resolveBinary(bin)
	if err != nil {
		return err
	}

	addrs := make([]string, n)
	for i := range addrs {
		addrs[i] = "127.0.0.1:" + strconv.Itoa(basePort+i)
	}
	peerList := strings.Join(addrs, ",")
	runID := uuid.New().String()

	log.Printf("sortrun: launching %d processes (run %s)", n, runID)
	procs := make([]*exec.Cmd, n)
	for rank := 0; rank < n; rank++ {
		cmd := exec.Command(path,
			"-rank", strconv.Itoa(rank),
			"-peers", peerList,
			"-run", runID,
			input, output,
		)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start rank %d: %w", rank, err)
		}
		procs[rank] = cmd
	}

	var firstErr error
	for rank, cmd := range procs {
		if err := cmd.Wait(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("rank %d: %w", rank, err)
		}
	}
	return firstErr
}

// resolveBinary locates the samplesort binary: an explicit -bin wins,
// then a sibling of this executable, then $PATH.
func resolveBinary(bin string) (string, error) {
	if bin != "" {
		return bin, nil
	}
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), "samplesort")
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	if path, err := exec.LookPath("samplesort"); err == nil {
		return path, nil
	}
	return "", errors.New("samplesort binary not found; build it or pass -bin")
}
