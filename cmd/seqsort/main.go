// Package main implements seqsort, the single-process baseline sorter
// used for correctness and performance comparison against distributed
// runs. It accepts and produces the same one-record-per-line file format.
//
//	seqsort <input-file> <output-file>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dreamware/samplesort/internal/record"
)

var logFatal = log.Fatalf

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <input-file> <output-file>\n", os.Args[0])
		os.Exit(2)
	}

	records, err := record.ReadFile(flag.Arg(0))
	if err != nil {
		logFatal("seqsort: %v", err)
	}

	start := time.Now()
	record.Sort(records)
	elapsed := time.Since(start)

	if err := record.WriteFile(flag.Arg(1), records); err != nil {
		logFatal("seqsort: %v", err)
	}
	log.Printf("seqsort: %d records sorted in %v", len(records), elapsed)
}
