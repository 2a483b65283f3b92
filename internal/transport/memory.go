package transport

import (
	"context"
	"fmt"
)

// Network is an in-process realization of the group transport, wiring
// every rank's inbox together directly. It backs tests and local mode,
// where all ranks run as goroutines inside one process; the protocol
// cannot tell it apart from the HTTP transport.
type Network struct {
	inboxes []*inbox
}

// NewNetwork creates an in-process network for a group of the given size.
func NewNetwork(size int) *Network {
	n := &Network{inboxes: make([]*inbox, size)}
	for i := range n.inboxes {
		n.inboxes[i] = newInbox()
	}
	return n
}

// Size returns the group size the network was built for.
func (n *Network) Size() int { return len(n.inboxes) }

// Transport returns the transport endpoint for one rank. Each rank must
// use its own endpoint.
func (n *Network) Transport(rank int) *Memory {
	return &Memory{rank: rank, net: n}
}

// Memory is one rank's endpoint on an in-process Network.
type Memory struct {
	net  *Network
	rank int
}

// Send delivers payload straight into the destination rank's inbox.
func (m *Memory) Send(_ context.Context, to int, tag Tag, payload []byte) error {
	if to < 0 || to >= m.net.Size() {
		return fmt.Errorf("send: no peer with rank %d", to)
	}
	m.net.inboxes[to].push(m.rank, tag, payload)
	return nil
}

// Recv blocks until a payload tagged `tag` from rank `from` arrives.
func (m *Memory) Recv(ctx context.Context, from int, tag Tag) ([]byte, error) {
	return m.net.inboxes[m.rank].pop(ctx, from, tag)
}

// Close is a no-op; an in-process network holds no resources.
func (m *Memory) Close() error { return nil }
