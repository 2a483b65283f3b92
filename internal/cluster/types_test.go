package cluster

import (
	"testing"
)

func TestParseGroup(t *testing.T) {
	t.Run("valid list", func(t *testing.T) {
		g, err := ParseGroup("127.0.0.1:9000,127.0.0.1:9001, 127.0.0.1:9002")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if g.Size() != 3 {
			t.Fatalf("got size %d, want 3", g.Size())
		}
		if g.Addr(2) != "127.0.0.1:9002" {
			t.Errorf("rank 2 addr: got %q", g.Addr(2))
		}
		for i, p := range g.Procs {
			if p.Rank != i {
				t.Errorf("proc %d has rank %d", i, p.Rank)
			}
		}
	})

	t.Run("single member", func(t *testing.T) {
		g, err := ParseGroup("127.0.0.1:9000")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if g.Size() != 1 {
			t.Errorf("got size %d, want 1", g.Size())
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if _, err := ParseGroup("  "); err == nil {
			t.Error("expected error for empty peer list")
		}
	})

	t.Run("empty entry", func(t *testing.T) {
		if _, err := ParseGroup("127.0.0.1:9000,,127.0.0.1:9002"); err == nil {
			t.Error("expected error for empty peer entry")
		}
	})
}

func TestIsCoordinator(t *testing.T) {
	if !IsCoordinator(0) {
		t.Error("rank 0 must hold the coordinator capability")
	}
	for _, rank := range []int{1, 2, 17} {
		if IsCoordinator(rank) {
			t.Errorf("rank %d must not hold the coordinator capability", rank)
		}
	}
}
