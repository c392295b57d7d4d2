package bfs

import (
	"testing"

	"github.com/gilchrisn/skim/internal/graphio"
)

func buildChain(t *testing.T) *graphio.Graph {
	t.Helper()
	el := &graphio.EdgeList{
		NumVertices: 4,
		From:        []uint32{0, 1, 2},
		To:          []uint32{1, 2, 3},
	}
	g, err := graphio.Build(el, graphio.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestFastSetInsertContainsClear(t *testing.T) {
	s := NewFastSet(5)
	s.Insert(2)
	s.Insert(4)
	t.Logf("after insert: size=%d keys=%v", s.Size(), s.ContainedKeys())
	if !s.IsContained(2) || !s.IsContained(4) {
		t.Fatalf("expected 2 and 4 to be contained")
	}
	if s.IsContained(0) {
		t.Fatalf("expected 0 to be absent")
	}
	s.Insert(2) // duplicate insert is a no-op
	if s.Size() != 2 {
		t.Fatalf("duplicate insert changed size: got %d, want 2", s.Size())
	}
	s.Clear()
	if s.Size() != 0 || s.IsContained(2) {
		t.Fatalf("Clear did not empty the set")
	}
}

func TestFastSetDeleteByIndexSwapToBack(t *testing.T) {
	s := NewFastSet(5)
	s.Insert(0)
	s.Insert(1)
	s.Insert(2)
	deleted := s.DeleteByIndex(0)
	t.Logf("deleted %d, remaining %v", deleted, s.ContainedKeys())
	if deleted != 0 {
		t.Fatalf("DeleteByIndex(0) returned %d, want 0", deleted)
	}
	if s.IsContained(0) {
		t.Fatalf("0 should no longer be contained")
	}
	if s.Size() != 2 {
		t.Fatalf("size after delete = %d, want 2", s.Size())
	}
}

func TestEngineForwardBFSVisitsReachableVertices(t *testing.T) {
	g := buildChain(t)
	e := NewEngine(g.NumVertices())
	alwaysLive := func(a, b uint32, i uint16) bool { return true }
	var visited []uint32
	stopped := e.Run(g, 0, 0, Forward, alwaysLive, nil, func(u uint32) Result {
		visited = append(visited, u)
		return Continue
	})
	t.Logf("forward BFS from 0 visited: %v", visited)
	if stopped {
		t.Fatalf("expected no stop")
	}
	if len(visited) != 4 {
		t.Fatalf("expected all 4 vertices reachable, got %v", visited)
	}
}

func TestEngineBackwardBFSFlipsLiveOrientation(t *testing.T) {
	g := buildChain(t)
	e := NewEngine(g.NumVertices())
	var seenPairs [][2]uint32
	live := func(a, b uint32, i uint16) bool {
		seenPairs = append(seenPairs, [2]uint32{a, b})
		return true
	}
	e.Run(g, 3, 0, Backward, live, nil, func(u uint32) Result { return Continue })
	t.Logf("backward BFS live() calls: %v", seenPairs)
	for _, p := range seenPairs {
		// backward traversal must always query liveness as (origin, target)
		// in the underlying forward direction, i.e. a < b here given the chain.
		if p[0] >= p[1] {
			t.Errorf("expected backward BFS to query live(w,u) with w<u on this chain, got %v", p)
		}
	}
}

func TestEngineStopHaltsExpansion(t *testing.T) {
	g := buildChain(t)
	e := NewEngine(g.NumVertices())
	alwaysLive := func(a, b uint32, i uint16) bool { return true }
	var visited []uint32
	stopped := e.Run(g, 0, 0, Forward, alwaysLive, nil, func(u uint32) Result {
		visited = append(visited, u)
		if u == 1 {
			return Stop
		}
		return Continue
	})
	t.Logf("visited before stop: %v", visited)
	if !stopped {
		t.Fatalf("expected stopped=true")
	}
	if len(visited) != 2 {
		t.Fatalf("expected traversal to halt right after visiting 1, got %v", visited)
	}
}

func TestEngineExcludedVertexNeverEntersFrontier(t *testing.T) {
	g := buildChain(t)
	e := NewEngine(g.NumVertices())
	alwaysLive := func(a, b uint32, i uint16) bool { return true }
	excluded := func(v uint32) bool { return v == 2 }
	var visited []uint32
	e.Run(g, 0, 0, Forward, alwaysLive, excluded, func(u uint32) Result {
		visited = append(visited, u)
		return Continue
	})
	t.Logf("visited with 2 excluded: %v", visited)
	for _, v := range visited {
		if v == 2 || v == 3 { // 3 is only reachable through 2
			t.Errorf("expected vertex 2 (and downstream 3) to be pruned, but visited %v", visited)
		}
	}
}

func TestEngineSourceItselfExcludedSkipsEntirely(t *testing.T) {
	g := buildChain(t)
	e := NewEngine(g.NumVertices())
	alwaysLive := func(a, b uint32, i uint16) bool { return true }
	excluded := func(v uint32) bool { return v == 0 }
	called := false
	e.Run(g, 0, 0, Forward, alwaysLive, excluded, func(u uint32) Result {
		called = true
		return Continue
	})
	if called {
		t.Fatalf("visit should never be called when the source itself is excluded")
	}
}
