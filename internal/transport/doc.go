// Package transport provides the reliable, ordered, point-to-point
// channel abstraction the sort protocol runs over, so the algorithm
// never depends on how frames actually move.
//
// # Model
//
// A Transport connects one rank to the rest of a fixed group. Sends
// complete once the destination's inbox has accepted the payload;
// receives block until the awaited (sender, tag) frame arrives. Per
// (sender, tag) pair, delivery order equals send order, the property
// the count-then-payload handshakes lean on. There are no timeouts: the
// protocol's phases form implicit barriers, and a missing peer is meant
// to stall the group until the run is torn down.
//
// # Implementations
//
// HTTP: every process runs an HTTP server; a frame is a JSON envelope
// POSTed to the destination's /frame endpoint and demultiplexed into a
// per-(sender, tag) mailbox. /health answers readiness probes so a group
// can assemble despite staggered process startup. This is the
// inter-process transport used by real runs.
//
// Memory: the same mailboxes wired directly together inside one
// process. Used by tests and by the launcher's local mode; the protocol
// cannot tell the two implementations apart.
package transport
