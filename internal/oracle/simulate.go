package oracle

import "github.com/gilchrisn/skim/internal/bfs"

// ComputeInfluence measures S's exact influence by Monte-Carlo simulation:
// for each of lEval instances, run one forward BFS seeded with every
// vertex of S at once, counting total visits, then average across
// instances. Seeding every s in S simultaneously (rather than one at a
// time) is deliberate — it counts each reachable vertex once per
// instance even when several seeds can reach it, matching the union
// semantics the estimator approximates.
//
// Grounded on ComputeInfluence (original_source/src/RSInfluenceOracle.h
// lines 355-378).
func (o *Oracle) ComputeInfluence(S []uint32, lEval uint16) float64 {
	samples := o.SimulateSamples(S, lEval)
	var total float64
	for _, s := range samples {
		total += s
	}
	return total / float64(lEval)
}

// SimulateSamples is ComputeInfluence's per-instance breakdown: the
// number of vertices reached in each of the lEval instances individually,
// before averaging. internal/eval consumes this for confidence-interval
// reporting; ComputeInfluence itself just averages it.
func (o *Oracle) SimulateSamples(S []uint32, lEval uint16) []float64 {
	engine := bfs.NewEngine(o.g.NumVertices())
	live := func(a, b uint32, i uint16) bool { return o.diff.Contained(a, b, i) }

	samples := make([]float64, lEval)
	for i := uint16(0); i < lEval; i++ {
		engine.Frontier().Clear()
		for _, s := range S {
			engine.Frontier().Insert(s)
		}
		var count float64
		engine.RunFrom(o.g, i, bfs.Forward, live, nil, func(u uint32) bfs.Result {
			count++
			return bfs.Continue
		})
		samples[i] = count
	}
	return samples
}
