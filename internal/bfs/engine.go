package bfs

import "github.com/gilchrisn/skim/internal/graphio"

// Direction selects which arc flag the engine expands along: Forward
// walks u->w arcs, Backward walks the reverse graph (arcs with the
// backward flag set), testing liveness as alive(w, u, i) rather than
// alive(u, w, i).
type Direction = graphio.Direction

const (
	Forward  = graphio.Forward
	Backward = graphio.Backward
)

// Result is what a Visit callback returns to the engine: Continue keeps
// expanding the frontier from the current vertex; Prune dequeues the
// current vertex (and counts as visited) but skips its arc expansion
// without otherwise affecting the traversal — used by sketch
// preprocessing to stop propagating past a vertex whose local sketch is
// already full without aborting the whole BFS; Stop ends the traversal
// immediately after the current vertex (used by SKIM's sketch-building
// BFS, which halts the moment a sketch fills to k).
type Result int

const (
	Continue Result = iota
	Prune
	Stop
)

// Visit is called once per dequeued vertex, in FIFO order.
type Visit func(u uint32) Result

// Live reports whether the arc a->b of the underlying directed graph is
// alive in instance i. The engine always passes the arc's origin first:
// for a Forward BFS expanding u->w that is (u, w); for a Backward BFS the
// engine flips the call to (w, u), so the first argument is "the vertex
// the edge originates from in the underlying directed graph" — not
// "the vertex being expanded from".
type Live func(a, b uint32, i uint16) bool

// Excluded reports whether v must never enter the frontier regardless of
// liveness — typically a per-instance "already covered" bitmap.
type Excluded func(v uint32) bool

// Engine runs pruned BFS traversals that all share one reusable frontier,
// avoiding a fresh allocation per call. Not safe for concurrent use by
// multiple goroutines; callers that parallelize across instances (SKIM's
// Phase C) construct one Engine per worker.
//
// Grounded on the original SKIM source's inline BFS loops (the FastSet
// S0/S + FORALL_INCIDENT_ARCS pattern repeated in sketch construction and
// coverage propagation) generalized into a single reusable shape per
// spec.md §4.2, since the original open-codes the same loop three times
// with only the prune/visit logic differing.
type Engine struct {
	frontier *FastSet
}

// NewEngine builds an Engine whose frontier spans the vertex universe
// [0, numVertices).
func NewEngine(numVertices uint32) *Engine {
	return &Engine{frontier: NewFastSet(numVertices)}
}

// Frontier exposes the underlying reusable set, e.g. so a caller can seed
// multiple sources before calling Run, or inspect members after a Stop.
func (e *Engine) Frontier() *FastSet { return e.frontier }

// Run performs one BFS from source over instance i in the given
// direction, expanding through g, testing liveness via live, and
// refusing to enter excluded vertices. The frontier is cleared first.
// visit is invoked once per dequeued vertex; if it returns Stop, Run
// halts immediately after that call (the vertex has already been
// dequeued and visited, but its neighbors are not expanded); if it
// returns Prune, the vertex's neighbors are skipped but the rest of the
// frontier still drains normally. Run reports whether visit ever
// returned Stop.
func (e *Engine) Run(g *graphio.Graph, source uint32, i uint16, dir Direction, live Live, excluded Excluded, visit Visit) (stopped bool) {
	e.frontier.Clear()
	if excluded != nil && excluded(source) {
		return false
	}
	e.frontier.Insert(source)
	return e.drain(g, i, dir, live, excluded, visit)
}

// RunFrom behaves like Run but assumes the caller has already seeded the
// frontier (e.g. with multiple sources, or because the single source was
// found already-excluded and intentionally left out). It is the shape
// SKIM's coverage BFS uses: "insert newSeed only if not already covered,
// then drain."
func (e *Engine) RunFrom(g *graphio.Graph, i uint16, dir Direction, live Live, excluded Excluded, visit Visit) (stopped bool) {
	return e.drain(g, i, dir, live, excluded, visit)
}

func (e *Engine) drain(g *graphio.Graph, i uint16, dir Direction, live Live, excluded Excluded, visit Visit) bool {
	ind := 0
	for ind < e.frontier.Size() {
		u := e.frontier.KeyByIndex(ind)
		ind++

		switch visit(u) {
		case Stop:
			return true
		case Prune:
			continue
		}

		for _, a := range g.Arcs(u) {
			if !a.HasDirection(dir) {
				continue
			}
			w := a.OtherVertex()
			var alive bool
			if dir == Forward {
				alive = live(u, w, i)
			} else {
				alive = live(w, u, i)
			}
			if !alive {
				continue
			}
			if e.frontier.IsContained(w) {
				continue
			}
			if excluded != nil && excluded(w) {
				continue
			}
			e.frontier.Insert(w)
		}
	}
	return false
}
