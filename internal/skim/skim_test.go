package skim

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/skim/internal/diffusion"
	"github.com/gilchrisn/skim/internal/graphio"
)

func buildPath(t *testing.T, n uint32) *graphio.Graph {
	t.Helper()
	el := &graphio.EdgeList{NumVertices: n}
	for v := uint32(0); v+1 < n; v++ {
		el.From = append(el.From, v)
		el.To = append(el.To, v+1)
	}
	g, err := graphio.Build(el, graphio.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestSingleVertexGraphPicksOneSeedWithInfluenceOne(t *testing.T) {
	el := &graphio.EdgeList{NumVertices: 1}
	g, err := graphio.Build(el, graphio.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	oracle := diffusion.NewOracle(g, 1, 4, diffusion.Binary, 1.0)
	cfg := Config{K: 4, L: 4, N: 1, Threads: 1, Seed: 1}
	r := NewRunner(g, oracle, cfg, zerolog.Nop())

	seeds := r.Run()
	t.Logf("single-vertex seeds: %+v", seeds)
	if len(seeds) != 1 {
		t.Fatalf("expected exactly one seed, got %d", len(seeds))
	}
	if seeds[0].VertexID != 0 {
		t.Fatalf("seed vertex = %d, want 0", seeds[0].VertexID)
	}
	if seeds[0].ExactInfluence != 1 {
		t.Fatalf("exact influence = %f, want 1", seeds[0].ExactInfluence)
	}
}

func TestPathGraphWeightedSingleInstanceReachesAllFour(t *testing.T) {
	g := buildPath(t, 4)
	oracle := diffusion.NewOracle(g, 1, 1, diffusion.Weighted, 0)
	cfg := Config{K: 4, L: 1, N: 1, Threads: 1, Seed: 1}
	r := NewRunner(g, oracle, cfg, zerolog.Nop())

	seeds := r.Run()
	t.Logf("path graph seeds: %+v", seeds)
	if len(seeds) != 1 {
		t.Fatalf("expected exactly one seed, got %d", len(seeds))
	}
	if seeds[0].VertexID != 0 {
		t.Fatalf("expected the path's root (vertex 0) to be picked as the sole seed, got %d", seeds[0].VertexID)
	}
	if seeds[0].ExactInfluence != 4 {
		t.Fatalf("exact influence = %f, want 4 (every vertex on a weighted single-indegree chain is always alive)", seeds[0].ExactInfluence)
	}
}

func TestDisconnectedTrianglesPickTwoSeedsWithCumulativeSix(t *testing.T) {
	el := &graphio.EdgeList{
		NumVertices: 6,
		From:        []uint32{0, 1, 2, 3, 4, 5},
		To:          []uint32{1, 2, 0, 4, 5, 3},
	}
	g, err := graphio.Build(el, graphio.BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	oracle := diffusion.NewOracle(g, 7, 4, diffusion.Binary, 1.0)
	cfg := Config{K: 4, L: 4, N: 2, Threads: 1, Seed: 7}
	r := NewRunner(g, oracle, cfg, zerolog.Nop())

	seeds := r.Run()
	t.Logf("disconnected triangles seeds: %+v", seeds)
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}
	if seeds[1].CumulativeInfluence != 6 {
		t.Fatalf("cumulative exact influence = %f, want 6", seeds[1].CumulativeInfluence)
	}
	for i := 1; i < len(seeds); i++ {
		if seeds[i].CumulativeInfluence < seeds[i-1].CumulativeInfluence {
			t.Fatalf("cumulative influence decreased between seed %d and %d: %v", i-1, i, seeds)
		}
	}
}

func TestUndirectedCliquePicksOneSeedCoveringEveryVertex(t *testing.T) {
	el := &graphio.EdgeList{NumVertices: 5}
	for u := uint32(0); u < 5; u++ {
		for v := u + 1; v < 5; v++ {
			el.From = append(el.From, u)
			el.To = append(el.To, v)
		}
	}
	g, err := graphio.Build(el, graphio.BuildOptions{Undirected: true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	oracle := diffusion.NewOracle(g, 31101982, 8, diffusion.Binary, 1.0)
	cfg := Config{K: 8, L: 8, N: 1, Threads: 1, Seed: 31101982}
	r := NewRunner(g, oracle, cfg, zerolog.Nop())

	seeds := r.Run()
	t.Logf("undirected K5 clique seeds: %+v", seeds)
	if len(seeds) != 1 {
		t.Fatalf("expected exactly one seed, got %d", len(seeds))
	}
	if seeds[0].ExactInfluence != 5 {
		t.Fatalf("exact influence = %f, want 5 (every vertex reaches the whole clique when p=1.0)", seeds[0].ExactInfluence)
	}
}

func TestDeterministicForSameSeedSingleThread(t *testing.T) {
	g := buildPath(t, 20)
	run := func() []Seed {
		oracle := diffusion.NewOracle(g, 123, 8, diffusion.Weighted, 0)
		cfg := Config{K: 4, L: 8, N: 5, Threads: 1, Seed: 123}
		r := NewRunner(g, oracle, cfg, zerolog.Nop())
		return r.Run()
	}
	a := run()
	b := run()
	t.Logf("run a: %+v", a)
	t.Logf("run b: %+v", b)
	if len(a) != len(b) {
		t.Fatalf("seed counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].VertexID != b[i].VertexID {
			t.Fatalf("seed %d differs: %d vs %d", i, a[i].VertexID, b[i].VertexID)
		}
	}
}

func TestNZeroTargetsAllVertices(t *testing.T) {
	g := buildPath(t, 5)
	oracle := diffusion.NewOracle(g, 5, 4, diffusion.Binary, 1.0)
	cfg := Config{K: 4, L: 4, N: 0, Threads: 1, Seed: 5}
	r := NewRunner(g, oracle, cfg, zerolog.Nop())
	if got := r.target(); got != 5 {
		t.Fatalf("target() = %d, want 5 (N=0 means n)", got)
	}
}
