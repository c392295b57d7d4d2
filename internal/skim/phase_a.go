package skim

import (
	"github.com/gilchrisn/skim/internal/bfs"
	"github.com/gilchrisn/skim/internal/sketch"
)

// phaseA draws ranks from the stream until some vertex's sketch fills to
// k, building sketches incrementally along the way. Returns ok=false once
// the stream is exhausted without a seed emerging (the caller then
// transitions to saturation).
//
// Grounded on original_source/src/SKIM.h lines ~137-206.
func (r *Runner) phaseA() (Seed, bool) {
	engine := r.engines[0]

	for !r.stream.Exhausted() {
		source, i := r.stream.Next()
		if r.covered[i][source] {
			continue
		}

		key := sketch.MakeKey(source, i)
		var triggered uint32
		found := false

		live := func(a, b uint32, inst uint16) bool { return r.oracle.Contained(a, b, inst) }
		excluded := func(v uint32) bool { return r.covered[i][v] }

		engine.Run(r.g, source, i, bfs.Backward, live, excluded, func(u uint32) bfs.Result {
			r.inv.Append(key, u)
			r.sketchSizes[u]++
			if r.sketchSizes[u] == uint16(r.k) {
				triggered = u
				found = true
				return bfs.Stop
			}
			return bfs.Continue
		})

		if found {
			rank := r.stream.Rank()
			est := float64(r.k-1) * float64(r.n) / float64(rank)
			return Seed{VertexID: triggered, EstimatedInfluence: est, Rank: rank}, true
		}
	}
	return Seed{}, false
}
