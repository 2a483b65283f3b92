package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// CoordinatorRank is the process index that carries the coordinator
// capability: it reads the input, selects pivots, and writes the output.
// Every other capability (sort, sample, partition, exchange) is symmetric
// across the group.
const CoordinatorRank = 0

// ProcessInfo identifies one member of the process group.
type ProcessInfo struct {
	Addr string `json:"addr"` // host:port the process listens on
	Rank int    `json:"rank"` // process index in [0, group size)
}

// Group is the fixed, rank-ordered set of cooperating processes for one
// run. Membership never changes after launch: there is no registration,
// no rebalancing, and no recovery from a missing member.
type Group struct {
	Procs []ProcessInfo
}

// NewGroup builds a group from a rank-ordered address list.
func NewGroup(addrs []string) *Group {
	g := &Group{Procs: make([]ProcessInfo, len(addrs))}
	for i, a := range addrs {
		g.Procs[i] = ProcessInfo{Rank: i, Addr: a}
	}
	return g
}

// ParseGroup builds a group from a comma-separated, rank-ordered address
// list as passed on the command line, e.g.
// "127.0.0.1:9000,127.0.0.1:9001".
func ParseGroup(peers string) (*Group, error) {
	if strings.TrimSpace(peers) == "" {
		return nil, fmt.Errorf("empty peer list")
	}
	parts := strings.Split(peers, ",")
	addrs := make([]string, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("peer %d is empty", i)
		}
		addrs = append(addrs, p)
	}
	return NewGroup(addrs), nil
}

// Size returns the number of processes in the group.
func (g *Group) Size() int { return len(g.Procs) }

// Addr returns the listen address of the process holding the given rank.
func (g *Group) Addr(rank int) string { return g.Procs[rank].Addr }

// IsCoordinator reports whether the given rank holds the coordinator
// capability. The distinction is a role check, not a different program:
// all processes run the same binary.
func IsCoordinator(rank int) bool { return rank == CoordinatorRank }

var httpClient = &http.Client{}

// healthClient is used only for readiness probes, which should fail fast.
// Frame posts use httpClient, which carries no timeout: payload sizes are
// data-dependent and a slow peer is not an error in this protocol.
var healthClient = &http.Client{Timeout: 2 * time.Second}

// PostJSON posts a JSON body to url and decodes the JSON response into out
// (out may be nil when no response body is expected). A non-2xx status is
// an error.
func PostJSON(ctx context.Context, url string, body any, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %s: %d", url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetHealth probes a peer's /health endpoint, returning nil once the peer
// is up and serving.
func GetHealth(ctx context.Context, addr string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := healthClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health %s: %d", addr, resp.StatusCode)
	}
	return nil
}
