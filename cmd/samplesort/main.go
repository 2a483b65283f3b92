// Package main implements the samplesort process: one member of the
// fixed group that cooperatively sorts a record file. Every member runs
// this same binary and branches only on its own rank; rank 0 additionally
// reads the input, selects pivots, writes the output, and reports phase
// timings.
//
// The launch surface is normally driven by sortrun, not typed by hand:
//
//	samplesort -rank 1 -peers 127.0.0.1:9000,127.0.0.1:9001 \
//	    [-bind addr] [-run id] <input> <output>
//
// Without -peers the process forms a group of one and sorts the file by
// itself, with no communication.
//
// Exit codes:
//   - 0: run reached DONE
//   - 1: fatal I/O, transport, or protocol error
//   - 2: usage error (reported by the coordinator only)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dreamware/samplesort/internal/cluster"
	"github.com/dreamware/samplesort/internal/samplesort"
	"github.com/dreamware/samplesort/internal/transport"
)

// logFatal is a variable to allow mocking log.Fatalf in tests.
var logFatal = log.Fatalf

func main() {
	rank := flag.Int("rank", 0, "this process's index in the group")
	peers := flag.String("peers", "", "comma-separated, rank-ordered listen addresses of the whole group")
	bind := flag.String("bind", "", "listen address override (default: own entry in -peers)")
	runID := flag.String("run", "", "run identifier stamped on every frame")
	flag.Parse()

	if flag.NArg() != 2 {
		// Reported once, by the coordinator; the rest of the group still
		// exits non-zero so the launcher sees the whole run fail.
		if cluster.IsCoordinator(*rank) {
			fmt.Fprintf(os.Stderr, "usage: %s [flags] <input-file> <output-file>\n", os.Args[0])
			flag.PrintDefaults()
		}
		os.Exit(2)
	}
	input, output := flag.Arg(0), flag.Arg(1)

	cfg := samplesort.Config{
		Rank:       *rank,
		Size:       1,
		InputPath:  input,
		OutputPath: output,
	}

	ctx := context.Background()
	if *peers != "" {
		group, err := cluster.ParseGroup(*peers)
		if err != nil {
			logFatal("rank[%d] bad -peers: %v", *rank, err)
		}
		if *rank < 0 || *rank >= group.Size() {
			logFatal("rank[%d] outside group of size %d", *rank, group.Size())
		}
		cfg.Size = group.Size()

		tp := transport.NewHTTP(*rank, *runID)
		listen := *bind
		if listen == "" {
			listen = group.Addr(*rank)
		}
		addr, err := tp.Listen(listen)
		if err != nil {
			logFatal("rank[%d] %v", *rank, err)
		}
		tp.Join(group)
		defer tp.Close()

		log.Printf("rank[%d] listening on %s (group size %d)", *rank, addr, group.Size())
		if err := tp.WaitPeers(ctx); err != nil {
			logFatal("rank[%d] %v", *rank, err)
		}
		cfg.Transport = tp
	}

	timings := make(map[string]time.Duration)
	if cluster.IsCoordinator(*rank) {
		cfg.OnPhase = func(phase string, elapsed time.Duration) {
			timings[phase] = elapsed
		}
	}

	if err := samplesort.Run(ctx, cfg); err != nil {
		logFatal("rank[%d] run failed: %v", *rank, err)
	}

	if cluster.IsCoordinator(*rank) {
		fmt.Println("=== phase timings ===")
		fmt.Printf("local sort: %v\n", timings["local_sort"])
		fmt.Printf("final sort: %v\n", timings["final_sort"])
		fmt.Printf("total:      %v\n", timings["total"])
		fmt.Println("=====================")
	}
	log.Printf("rank[%d] done", *rank)
}
