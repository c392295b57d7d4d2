package graphio

import (
	"fmt"

	"github.com/gilchrisn/skim/internal/assert"
)

// Graph is the immutable CSR (compressed sparse row) representation that
// every algorithm in this module reads. It generalizes the teacher's plain
// adjacency-list Graph (pkg2/louvain/graph.go) into the packed,
// forward/backward-tagged arc layout spec.md §3 requires: a single arc
// array supports both forward traversal (arcs with Forward() set) and
// backward traversal over the reverse graph (arcs with Backward() set),
// without materializing a second adjacency structure.
type Graph struct {
	numVertices uint32
	firstArc    []uint32 // length numVertices+1; firstArc[n] == len(arcs) (sentinel)
	arcs        []Arc
}

// NumVertices returns the number of vertices n. Vertex ids are dense in
// [0, n).
func (g *Graph) NumVertices() uint32 { return g.numVertices }

// NumArcs returns the total number of arc records. Build stores every
// input edge as one arc at each endpoint: both arcs carry both flags for
// an undirected edge; a directed edge gets a forward arc at its source and
// a backward arc at its target. With DedupeParallel, repeated
// (vertex, neighbor) arcs are merged into one.
func (g *Graph) NumArcs() int { return len(g.arcs) }

// Arcs returns the arcs incident to vertex v, in the order they were
// inserted by the builder.
func (g *Graph) Arcs(v uint32) []Arc {
	assert.Must(v < g.numVertices, "vertex %d out of range [0,%d)", v, g.numVertices)
	return g.arcs[g.firstArc[v]:g.firstArc[v+1]]
}

// ArcAt returns the arc at flat arc index id, where id ranges over
// [0, NumArcs()) across the whole arc array regardless of which vertex
// owns it. Used by uniform arc sampling (the influence oracle's
// neighborhood seed-set generator samples a random arc this way before
// resolving which vertex it belongs to).
func (g *Graph) ArcAt(id int) Arc {
	assert.Must(id >= 0 && id < len(g.arcs), "ArcAt(%d) out of range [0,%d)", id, len(g.arcs))
	return g.arcs[id]
}

// Validate checks the structural invariants spec.md §3 requires: arc/vertex
// counts match the header, the sentinel first-arc entry is correct, first
// arc ids are monotonically non-decreasing, and every arc carries at least
// one direction flag.
func (g *Graph) Validate() error {
	if len(g.firstArc) != int(g.numVertices)+1 {
		return fmt.Errorf("firstArc has length %d, want %d", len(g.firstArc), g.numVertices+1)
	}
	if g.firstArc[g.numVertices] != uint32(len(g.arcs)) {
		return fmt.Errorf("sentinel firstArc[n]=%d does not match arc count %d", g.firstArc[g.numVertices], len(g.arcs))
	}
	for v := uint32(1); v <= g.numVertices; v++ {
		if g.firstArc[v] < g.firstArc[v-1] {
			return fmt.Errorf("firstArc is not monotone at vertex %d: %d < %d", v, g.firstArc[v], g.firstArc[v-1])
		}
	}
	for _, a := range g.arcs {
		if !a.Valid() {
			return fmt.Errorf("arc to %d has neither forward nor backward flag set", a.OtherVertex())
		}
	}
	return nil
}

// InDegrees returns, for every vertex, the number of forward arcs (u,v)
// across the whole graph that terminate at v. This is a linear scan over
// all arcs and is intended to be called once during oracle/SKIM setup, not
// per-edge — callers cache the result (see diffusion.Oracle).
func InDegrees(g *Graph) []uint32 {
	indeg := make([]uint32, g.numVertices)
	for v := uint32(0); v < g.numVertices; v++ {
		for _, a := range g.Arcs(v) {
			if a.Forward() {
				indeg[a.OtherVertex()]++
			}
		}
	}
	return indeg
}

// EdgeList is the builder's raw input: an ordered collection of (from, to)
// pairs discovered while parsing a graph file, before CSR compaction.
type EdgeList struct {
	NumVertices uint32
	From, To    []uint32
}

// BuildOptions mirrors the CLI's -undir/-nopar/-trans switches (spec.md
// §6.1): whether to materialize both directions for every edge, whether to
// drop duplicate parallel arcs, and whether to swap endpoints before
// building (reverse the graph).
type BuildOptions struct {
	Undirected     bool
	DedupeParallel bool
	Transpose      bool
}

// directedEdge is one half of a parsed edge, already resolved to a single
// direction flag — the unit the counting-sort builder scatters into CSR
// slots.
type directedEdge struct {
	from, to          uint32
	forward, backward bool
}

// Build compacts an edge list into CSR form, following the counting-sort
// approach of the teacher's adjacency builders (pkg2/louvain/graph.go
// AddEdge, generalized to bulk construction): count out-degree per vertex,
// prefix-sum into firstArc, then scatter arcs into their slots.
func Build(el *EdgeList, opts BuildOptions) (*Graph, error) {
	n := el.NumVertices
	if len(el.From) != len(el.To) {
		return nil, fmt.Errorf("edge list From/To length mismatch: %d != %d", len(el.From), len(el.To))
	}

	edges := make([]directedEdge, 0, len(el.From)*2)
	for idx := range el.From {
		from, to := el.From[idx], el.To[idx]
		if opts.Transpose {
			from, to = to, from
		}
		if from >= n || to >= n {
			return nil, fmt.Errorf("edge (%d,%d) out of range for %d vertices", from, to, n)
		}
		if opts.Undirected {
			edges = append(edges, directedEdge{from: from, to: to, forward: true, backward: true})
			edges = append(edges, directedEdge{from: to, to: from, forward: true, backward: true})
		} else {
			edges = append(edges, directedEdge{from: from, to: to, forward: true})
			edges = append(edges, directedEdge{from: to, to: from, backward: true})
		}
	}

	if opts.DedupeParallel {
		edges = dedupeParallelArcs(edges)
	}

	outDegree := make([]uint32, n+1)
	for _, e := range edges {
		outDegree[e.from]++
	}
	firstArc := make([]uint32, n+1)
	for v := uint32(0); v < n; v++ {
		firstArc[v+1] = firstArc[v] + outDegree[v]
	}
	assert.Must(firstArc[n] == uint32(len(edges)), "prefix sum mismatch: %d != %d", firstArc[n], len(edges))

	cursor := make([]uint32, n)
	copy(cursor, firstArc[:n])
	arcs := make([]Arc, len(edges))
	for _, e := range edges {
		arcs[cursor[e.from]] = NewArc(e.to, e.forward, e.backward)
		cursor[e.from]++
	}

	g := &Graph{numVertices: n, firstArc: firstArc, arcs: arcs}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("built graph failed validation: %w", err)
	}
	return g, nil
}

// dedupeParallelArcs merges repeated (from,to) pairs into a single arc
// whose direction flags are the union of all occurrences, preserving first-
// seen order — the -nopar CLI switch.
func dedupeParallelArcs(edges []directedEdge) []directedEdge {
	type key struct{ from, to uint32 }
	merged := make(map[key]*directedEdge, len(edges))
	order := make([]key, 0, len(edges))
	for i := range edges {
		e := edges[i]
		k := key{e.from, e.to}
		if existing, ok := merged[k]; ok {
			existing.forward = existing.forward || e.forward
			existing.backward = existing.backward || e.backward
			continue
		}
		copyE := e
		merged[k] = &copyE
		order = append(order, k)
	}
	out := make([]directedEdge, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out
}
