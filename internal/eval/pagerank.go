package eval

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/gilchrisn/skim/internal/graphio"
)

// SeedInfluence is one row of cmd/skim's -oc coverage-trace companion: how
// central a seed's induced neighborhood is, independent of the exact
// coverage numbers the trace already reports.
type SeedInfluence struct {
	VertexID int64
	Score    float64
}

// PageRankOverSeeds runs gonum's PageRank over the seeds, their direct
// out-neighbors, and the seeds' forward arcs; arcs leaving a non-seed
// neighbor are not included. It is purely an observational
// companion metric alongside the exact coverage trace -oc writes — it does
// not feed back into seed selection.
//
// Grounded on graph-clustering-backend/src2/algorithm/coordinates/
// pagerank.go's convertUndirectedToDirected + network.PageRank pattern,
// simplified to the directed case since g is already directed.
func PageRankOverSeeds(g *graphio.Graph, seeds []uint32) []SeedInfluence {
	directed := simple.NewDirectedGraph()
	included := make(map[int64]bool)

	addNode := func(v uint32) {
		id := int64(v)
		if !included[id] {
			directed.AddNode(simple.Node(id))
			included[id] = true
		}
	}

	for _, s := range seeds {
		addNode(s)
		for _, a := range g.Arcs(s) {
			if a.Forward() {
				addNode(a.OtherVertex())
			}
		}
	}
	for _, s := range seeds {
		for _, a := range g.Arcs(s) {
			if !a.Forward() {
				continue
			}
			directed.SetEdge(simple.Edge{F: simple.Node(int64(s)), T: simple.Node(int64(a.OtherVertex()))})
		}
	}

	scores := network.PageRank(directed, 0.85, 1e-6)

	result := make([]SeedInfluence, 0, len(seeds))
	for _, s := range seeds {
		result = append(result, SeedInfluence{VertexID: int64(s), Score: scores[int64(s)]})
	}
	return result
}
