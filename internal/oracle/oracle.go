// Package oracle implements the influence-oracle half of the system: a
// one-shot preprocessing pass that builds combined bottom-k reachability
// sketches for every vertex over a fixed permutation of the rank space,
// then answers arbitrarily many queries against those sketches without
// touching the graph again — the Cohen cardinality estimator for fast
// approximate answers, exact Monte-Carlo simulation for ground truth, and
// two seed-set generators for benchmarking the two against each other.
//
// Grounded throughout on original_source/src/RSInfluenceOracle.h.
package oracle

import (
	"math/rand"

	"github.com/gilchrisn/skim/internal/bfs"
	"github.com/gilchrisn/skim/internal/diffusion"
	"github.com/gilchrisn/skim/internal/graphio"
	"github.com/gilchrisn/skim/internal/sketch"
)

// Oracle owns the preprocessed sketches and everything needed to answer
// queries against them: the graph (for exact simulation and seed-set
// generation, both of which still walk live edges), the diffusion model,
// and a single random stream reused across seed-set generation calls —
// matching the original's one long-lived mt19937 member rather than a
// fresh generator per call.
type Oracle struct {
	g        *graphio.Graph
	diff     *diffusion.Oracle
	k        int
	l        uint16
	seed     uint64
	rng      *rand.Rand
	plan     *sketch.OracleRankPlan
	sketches []*sketch.Sketch
	levels   []uint32
}

const levelSentinel = ^uint32(0)

// New builds an Oracle ready for Preprocess. diff must already be
// constructed for the same l this Oracle will preprocess with (spec.md
// §4.1: the diffusion model's per-instance hashing is shared between
// preprocessing, exact simulation, and SKIM runs of the same graph).
func New(g *graphio.Graph, diff *diffusion.Oracle, k int, l uint16, seed uint64) *Oracle {
	levels := make([]uint32, g.NumVertices())
	for i := range levels {
		levels[i] = levelSentinel
	}
	return &Oracle{
		g:      g,
		diff:   diff,
		k:      k,
		l:      l,
		seed:   seed,
		rng:    rand.New(rand.NewSource(int64(seed))),
		levels: levels,
	}
}

// Preprocess builds every vertex's combined bottom-k reachability sketch
// in one pass: draw the one-shot rank permutation, then for each instance
// in turn run a backward BFS from every vertex's assigned rank, pruning a
// branch the moment the local sketch it would feed is already full, and
// merge the instance's local sketches into the running global sketches
// before moving to the next instance.
//
// Grounded on RunPreprocessing (original_source/src/RSInfluenceOracle.h
// lines 273-351).
func (o *Oracle) Preprocess() {
	n := o.g.NumVertices()
	o.plan = sketch.NewOracleRankPlan(n, o.l, o.seed)
	o.sketches = make([]*sketch.Sketch, n)
	for v := range o.sketches {
		o.sketches[v] = sketch.New(o.k)
	}

	local := make([]*sketch.Sketch, n)
	for v := range local {
		local[v] = sketch.New(o.k)
	}

	engine := bfs.NewEngine(n)
	live := func(a, b uint32, i uint16) bool { return o.diff.Contained(a, b, i) }

	for i := uint16(0); i < o.l; i++ {
		for _, ir := range o.plan.ByInstance[i] {
			rank := ir.Rank
			engine.Run(o.g, ir.Source, i, bfs.Backward, live, nil, func(u uint32) bfs.Result {
				if local[u].Full() {
					return bfs.Prune
				}
				local[u].AppendIncreasing(rank)
				return bfs.Continue
			})
		}

		for v := uint32(0); v < n; v++ {
			o.sketches[v].MergeSorted(local[v].Ranks())
			local[v].Clear()
		}
	}
}
