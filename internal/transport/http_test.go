package transport

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/samplesort/internal/cluster"
)

// newHTTPPair starts two HTTP transports on loopback ports and joins them
// into one group.
func newHTTPPair(t *testing.T, runID string) (*HTTP, *HTTP) {
	t.Helper()

	t0 := NewHTTP(0, runID)
	a0, err := t0.Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { t0.Close() })

	t1 := NewHTTP(1, runID)
	a1, err := t1.Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { t1.Close() })

	group := cluster.NewGroup([]string{a0, a1})
	t0.Join(group)
	t1.Join(group)
	return t0, t1
}

// TestHTTPRoundTrip verifies delivery over the wire in both directions.
func TestHTTPRoundTrip(t *testing.T) {
	t0, t1 := newHTTPPair(t, "run-1")
	ctx := context.Background()

	require.NoError(t, t0.WaitPeers(ctx))
	require.NoError(t, t1.WaitPeers(ctx))

	require.NoError(t, t0.Send(ctx, 1, "scatter", []byte("forward")))
	got, err := t1.Recv(ctx, 0, "scatter")
	require.NoError(t, err)
	assert.Equal(t, []byte("forward"), got)

	require.NoError(t, t1.Send(ctx, 0, "samples", []byte("backward")))
	got, err = t0.Recv(ctx, 1, "samples")
	require.NoError(t, err)
	assert.Equal(t, []byte("backward"), got)
}

// TestHTTPOrdering verifies per-pair FIFO delivery across the wire.
func TestHTTPOrdering(t *testing.T) {
	t0, t1 := newHTTPPair(t, "run-1")
	ctx := context.Background()

	for _, p := range []string{"one", "two", "three", "four"} {
		require.NoError(t, t0.Send(ctx, 1, "exchange.data", []byte(p)))
	}
	for _, want := range []string{"one", "two", "three", "four"} {
		got, err := t1.Recv(ctx, 0, "exchange.data")
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}

// TestHTTPSelfSend verifies that a self-transfer bypasses the network
// and still lands in the local inbox.
func TestHTTPSelfSend(t *testing.T) {
	t0, _ := newHTTPPair(t, "run-1")
	ctx := context.Background()

	require.NoError(t, t0.Send(ctx, 0, "gather.data", []byte("local")))
	got, err := t0.Recv(ctx, 0, "gather.data")
	require.NoError(t, err)
	assert.Equal(t, []byte("local"), got)
}

// TestHTTPWrongRun verifies that a frame stamped with a different run ID
// is rejected at the receiver instead of polluting its mailboxes.
func TestHTTPWrongRun(t *testing.T) {
	_, t1 := newHTTPPair(t, "run-1")
	ctx := context.Background()

	stale := NewHTTP(0, "run-0")
	a, err := stale.Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { stale.Close() })
	stale.Join(cluster.NewGroup([]string{a, t1.group.Addr(1)}))

	err = stale.Send(ctx, 1, "scatter", []byte("stale"))
	assert.Error(t, err, "frame from another run must be refused")

	// The refused frame must not be observable on the receiver.
	recvCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	_, err = t1.Recv(recvCtx, 0, "scatter")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestHTTPUnknownPeer verifies that sends outside the group fail.
func TestHTTPUnknownPeer(t *testing.T) {
	t0, _ := newHTTPPair(t, "run-1")
	assert.Error(t, t0.Send(context.Background(), 5, "scatter", nil))
}

// TestHTTPWaitPeersUnreachable verifies that readiness probing gives up
// with an error when a peer never comes up.
func TestHTTPWaitPeersUnreachable(t *testing.T) {
	t0 := NewHTTP(0, "run-1")
	a0, err := t0.Listen("127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { t0.Close() })

	// Rank 1's address points at a port nobody listens on.
	t0.Join(cluster.NewGroup([]string{a0, "127.0.0.1:1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	assert.Error(t, t0.WaitPeers(ctx))
}
