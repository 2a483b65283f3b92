// Package samplesort implements the distributed sample-sort coordination
// protocol: a fixed group of cooperating processes with no shared memory
// sorts a large unordered collection of text records so that the
// concatenation of each process's final partition, read in rank order,
// equals the fully sorted dataset.
//
// # Overview
//
// Every process executes the same phase sequence, branching only on its
// own rank. Rank 0 additionally carries the coordinator capability: it is
// the only process that touches the input and output files, collects
// samples, and selects pivots. That asymmetry is a role check at phase
// boundaries, not a different program.
//
// # Phase sequence
//
//	INIT → SCATTER → LOCAL_SORT → SAMPLE → SAMPLE_COLLECT(coord)
//	     → PIVOT_SELECT(coord) → PIVOT_BROADCAST → PARTITION
//	     → EXCHANGE → FINAL_SORT → GATHER(coord) → DONE
//
//	          coordinator (rank 0)              workers (rank 1..k-1)
//	┌──────────────────────────────────┐      ┌───────────────────────┐
//	│ read input, split n/k (+1 for    │──────▶ receive share         │
//	│ the first n mod k ranks)         │      │                       │
//	│ sort own share                   │      │ sort own share        │
//	│ collect samples ◀────────────────│◀─────│ send k-1 samples      │
//	│ sort samples, pick k-1 pivots    │──────▶ receive pivots        │
//	│ bucket records by pivot          │      │ bucket records        │
//	│        ◀──── all-to-all exchange: counts, then payloads ────▶   │
//	│ sort received records            │      │ sort received records │
//	│ gather in rank order ◀───────────│◀─────│ send final partition  │
//	│ write output                     │      │                       │
//	└──────────────────────────────────┘      └───────────────────────┘
//
// # Invariants
//
//   - No record is created, dropped, or duplicated by any phase; the
//     coordinator verifies the gathered total against the input count.
//   - After partitioning, a record routed to rank d satisfies
//     pivot[d-1] <= record < pivot[d] (open at the ends).
//   - After the final sort, every record on rank p is <= every record on
//     rank q for p < q, and each partition is internally sorted.
//
// # Communication
//
// All communication goes through the transport abstraction: blocking
// point-to-point sends and receives over a reliable ordered channel.
// Wherever a payload size is data-dependent (exchange, gather) the
// record count crosses the wire before the payload, so no receiver ever
// sizes a buffer it cannot bound. In the exchange phase every process
// completes the count round for all peers before any payload transfer,
// which rules out partial-order deadlocks; records a process routes to
// itself move directly between slices and are never serialized.
//
// # Failure model
//
// Every failure is fatal: a malformed frame, a count mismatch, or an
// unreadable file aborts the run with no retry and no partial output.
// There is no tolerance for a crashed or missing group member.
package samplesort
