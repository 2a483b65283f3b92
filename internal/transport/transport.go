package transport

import (
	"context"
	"sync"
)

// Tag labels the protocol phase a frame belongs to, so a receiver can wait
// for exactly the message it expects next. Within one (sender, tag) pair,
// delivery order matches send order.
type Tag string

// Transport is a reliable, ordered, point-to-point channel abstraction
// between the members of a fixed process group.
//
// Semantics:
//   - Send delivers payload to the process holding rank `to`. It returns
//     once the payload is accepted into the receiver's inbox; it never
//     blocks on the receiver reaching a matching Recv.
//   - Recv blocks until a payload tagged `tag` from rank `from` is
//     available, or the context is canceled. There is no timeout: a
//     missing peer operation stalls the caller indefinitely.
//   - For a fixed (sender, receiver, tag) triple, payloads are received
//     in the order they were sent.
//
// Exactly one goroutine may Recv on a given (from, tag) pair; the
// protocol's single-threaded phase loop guarantees this.
type Transport interface {
	Send(ctx context.Context, to int, tag Tag, payload []byte) error
	Recv(ctx context.Context, from int, tag Tag) ([]byte, error)
	Close() error
}

// boxKey identifies one mailbox: frames from one sender under one tag.
type boxKey struct {
	from int
	tag  Tag
}

// mailbox is an unbounded FIFO queue with a blocking pop. Unbounded is
// safe here because the protocol exchanges counts before any
// data-dependent payload, so a receiver never accumulates more than a
// phase's worth of frames.
type mailbox struct {
	mu     sync.Mutex
	queue  [][]byte
	notify chan struct{} // 1-buffered push signal, single consumer
}

func newMailbox() *mailbox {
	return &mailbox{notify: make(chan struct{}, 1)}
}

func (m *mailbox) push(payload []byte) {
	m.mu.Lock()
	m.queue = append(m.queue, payload)
	m.mu.Unlock()
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *mailbox) pop(ctx context.Context) ([]byte, error) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			payload := m.queue[0]
			m.queue = m.queue[1:]
			m.mu.Unlock()
			return payload, nil
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.notify:
		}
	}
}

// inbox demultiplexes incoming frames into per-(sender, tag) mailboxes.
type inbox struct {
	mu    sync.Mutex
	boxes map[boxKey]*mailbox
}

func newInbox() *inbox {
	return &inbox{boxes: make(map[boxKey]*mailbox)}
}

func (in *inbox) box(from int, tag Tag) *mailbox {
	in.mu.Lock()
	defer in.mu.Unlock()
	key := boxKey{from: from, tag: tag}
	mb, ok := in.boxes[key]
	if !ok {
		mb = newMailbox()
		in.boxes[key] = mb
	}
	return mb
}

func (in *inbox) push(from int, tag Tag, payload []byte) {
	in.box(from, tag).push(payload)
}

func (in *inbox) pop(ctx context.Context, from int, tag Tag) ([]byte, error) {
	return in.box(from, tag).pop(ctx)
}
