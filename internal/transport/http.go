package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/dreamware/samplesort/internal/cluster"
)

// Frame is the JSON envelope a payload travels in between processes.
// The run ID guards against frames from a stale or concurrent run landing
// in this group's mailboxes.
type Frame struct {
	Run     string `json:"run"`
	Tag     Tag    `json:"tag"`
	Payload []byte `json:"payload"`
	From    int    `json:"from"`
}

const (
	// sendRetries and sendRetryDelay absorb the startup window where a
	// peer's listener is not up yet. Past that window a connection
	// failure is fatal: the group cannot survive a missing member.
	sendRetries    = 10
	sendRetryDelay = 400 * time.Millisecond

	waitPeerRetries = 50
	waitPeerDelay   = 200 * time.Millisecond
)

// HTTP is the inter-process transport: every process runs an HTTP server
// and frames are POSTed to the destination's /frame endpoint, where they
// are demultiplexed into blocking mailboxes.
type HTTP struct {
	rank  int
	runID string
	group *cluster.Group
	inbox *inbox
	srv   *http.Server
	ln    net.Listener
}

// NewHTTP creates a transport for the process holding the given rank.
// Frames carrying a different run ID are rejected; an empty runID
// disables the check.
func NewHTTP(rank int, runID string) *HTTP {
	return &HTTP{
		rank:  rank,
		runID: runID,
		inbox: newInbox(),
	}
}

// Listen binds the transport's server to addr (host:port, port may be 0)
// and starts serving in the background. It returns the bound address,
// which is what the rest of the group must be told about this process.
func (t *HTTP) Listen(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", addr, err)
	}
	t.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/frame", t.handleFrame)

	t.srv = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := t.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("rank[%d] transport serve: %v", t.rank, err)
		}
	}()
	return ln.Addr().String(), nil
}

// Join gives the transport the full group view. It must be called before
// the first Send or WaitPeers; the group's address for this transport's
// own rank is ignored (self-transfers never touch the network).
func (t *HTTP) Join(g *cluster.Group) {
	t.group = g
}

// WaitPeers blocks until every other group member answers its health
// probe, retrying through the startup window. The run must not begin
// before the whole group is reachable: the first phase already requires
// all-to-all participation.
func (t *HTTP) WaitPeers(ctx context.Context) error {
	for _, p := range t.group.Procs {
		if p.Rank == t.rank {
			continue
		}
		var lastErr error
		ok := false
		for i := 0; i < waitPeerRetries; i++ {
			if lastErr = cluster.GetHealth(ctx, p.Addr); lastErr == nil {
				ok = true
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitPeerDelay):
			}
		}
		if !ok {
			return fmt.Errorf("peer %d (%s) unreachable: %w", p.Rank, p.Addr, lastErr)
		}
	}
	return nil
}

// Send delivers payload to the process holding rank `to`. A self-send is
// routed straight into the local inbox without touching the network.
func (t *HTTP) Send(ctx context.Context, to int, tag Tag, payload []byte) error {
	if to == t.rank {
		t.inbox.push(t.rank, tag, payload)
		return nil
	}
	if t.group == nil || to < 0 || to >= t.group.Size() {
		return fmt.Errorf("send: no peer with rank %d", to)
	}

	frame := Frame{Run: t.runID, From: t.rank, Tag: tag, Payload: payload}
	url := "http://" + t.group.Addr(to) + "/frame"
	var lastErr error
	for i := 0; i < sendRetries; i++ {
		if lastErr = cluster.PostJSON(ctx, url, frame, nil); lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(sendRetryDelay)
	}
	return fmt.Errorf("send %s to rank %d: %w", tag, to, lastErr)
}

// Recv blocks until a payload tagged `tag` from rank `from` arrives.
func (t *HTTP) Recv(ctx context.Context, from int, tag Tag) ([]byte, error) {
	return t.inbox.pop(ctx, from, tag)
}

// Close shuts the transport's server down. In-flight handlers get a short
// grace period; by the time a process closes its transport the protocol
// has already completed or aborted.
func (t *HTTP) Close() error {
	if t.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.srv.Shutdown(ctx)
}

func (t *HTTP) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var frame Frame
	if err := json.NewDecoder(r.Body).Decode(&frame); err != nil {
		http.Error(w, "bad frame", http.StatusBadRequest)
		return
	}
	if t.runID != "" && frame.Run != t.runID {
		log.Printf("rank[%d] dropping frame for run %q (this run is %q)", t.rank, frame.Run, t.runID)
		http.Error(w, "wrong run", http.StatusConflict)
		return
	}
	if frame.From < 0 || (t.group != nil && frame.From >= t.group.Size()) {
		http.Error(w, "unknown sender", http.StatusBadRequest)
		return
	}
	t.inbox.push(frame.From, frame.Tag, frame.Payload)
	w.WriteHeader(http.StatusNoContent)
}
