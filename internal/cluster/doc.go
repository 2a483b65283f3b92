// Package cluster describes the process group a run executes under: a
// fixed, rank-ordered set of cooperating processes established at launch
// and never changed afterwards.
//
// # Topology
//
//	              ┌──────────────┐
//	              │   rank 0     │
//	              │ coordinator: │
//	              │ read/scatter │
//	              │ pivots       │
//	              │ gather/write │
//	              └──────┬───────┘
//	                     │
//	      ┌──────────────┼──────────────┐
//	┌─────▼─────┐  ┌─────▼─────┐  ┌─────▼─────┐
//	│  rank 1   │  │  rank 2   │  │  rank 3   │
//	│  worker   │  │  worker   │  │  worker   │
//	└───────────┘  └───────────┘  └───────────┘
//
// Every rank holds the symmetric worker capability set (sort, sample,
// partition, exchange); rank 0 additionally holds the coordinator
// capability. The distinction is a role predicate, not a different
// program or type.
//
// There is no registration protocol, no health-driven membership change,
// and no failover: the group either completes a run together or the run
// is dead. The package also carries the shared HTTP/JSON helpers the
// transport builds on.
package cluster
