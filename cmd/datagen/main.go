// Package main implements datagen, the synthetic producer for sample-sort
// inputs: random DNA-style records over the ACGT alphabet, one per line.
//
//	datagen [-seed 42] <record-count> <output-file>
//
// Record lengths are uniform in [10, 100]. The generator has no contract
// with the sorter beyond "one record per line"; it exists so runs and
// benchmarks have something realistic to chew on.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"
)

const (
	alphabet  = "ACGT"
	minLength = 10
	maxLength = 100
)

var logFatal = log.Fatalf

func main() {
	seed := flag.Int64("seed", 0, "random seed (default: current time)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <record-count> <output-file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	count, err := strconv.Atoi(flag.Arg(0))
	if err != nil || count < 0 {
		logFatal("datagen: bad record count %q", flag.Arg(0))
	}
	path := flag.Arg(1)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(path)
	if err != nil {
		logFatal("datagen: %v", err)
	}
	w := bufio.NewWriter(f)
	line := make([]byte, 0, maxLength+1)
	for i := 0; i < count; i++ {
		length := minLength + rng.Intn(maxLength-minLength+1)
		line = line[:0]
		for j := 0; j < length; j++ {
			line = append(line, alphabet[rng.Intn(len(alphabet))])
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			logFatal("datagen: write %s: %v", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		logFatal("datagen: write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		logFatal("datagen: close %s: %v", path, err)
	}

	log.Printf("datagen: %d records written to %s (seed %d)", count, path, *seed)
}
