package diffusion

import (
	"fmt"

	"github.com/gilchrisn/skim/internal/assert"
	"github.com/gilchrisn/skim/internal/graphio"
)

// Resolution is the integer denominator every threshold comparison is
// made against: Contained compares a hash value modulo Resolution to a
// model-specific integer threshold, rather than comparing floating point
// probabilities directly, so that the same (u,v,i) triple is live or dead
// identically across machines. spec.md §4.1 pins this to 3,000,000,
// matching the original's Constants-derived default.
const Resolution uint32 = 3_000_000

// Model selects which independent-cascade edge-probability rule Contained
// applies.
type Model int

const (
	Weighted Model = iota
	Binary
	Trivalency
)

func (m Model) String() string {
	switch m {
	case Weighted:
		return "weighted"
	case Binary:
		return "binary"
	case Trivalency:
		return "trivalency"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ParseModel parses the -m CLI flag's values (spec.md §6.1).
func ParseModel(s string) (Model, error) {
	switch s {
	case "weighted":
		return Weighted, nil
	case "binary":
		return Binary, nil
	case "trivalency":
		return Trivalency, nil
	default:
		return 0, fmt.Errorf("unknown diffusion model %q, want weighted, binary, or trivalency", s)
	}
}

// triProb holds the three trivalency buckets, in order: high, medium, low
// probability, each expressed as an integer threshold out of Resolution.
var triProb = [3]uint32{Resolution / 10, Resolution / 100, Resolution / 1000}

// Oracle answers "is arc u->v live in instance i (of ℓ total instances)"
// without ever materializing a live-edge subgraph, by hashing (u,v,i)
// against a model-specific threshold. One Oracle is built per graph + CLI
// invocation and shared read-only across all SKIM/oracle goroutines.
type Oracle struct {
	seed    uint32
	l       uint16
	model   Model
	binProb uint32
	indeg   []uint32 // only consulted by Weighted
}

// NewOracle builds an Oracle for the given graph and model parameters.
// binaryProb is the -p flag value (only meaningful for Binary); l is ℓ,
// the number of diffusion instances the run will draw.
func NewOracle(g *graphio.Graph, seed uint32, l uint16, model Model, binaryProb float64) *Oracle {
	o := &Oracle{seed: seed, l: l, model: model}
	switch model {
	case Weighted:
		o.indeg = graphio.InDegrees(g)
	case Binary:
		o.binProb = uint32(binaryProb * float64(Resolution))
	case Trivalency:
		// no per-instance state beyond the fixed triProb buckets
	}
	return o
}

// Contained reports whether arc u->v is live in instance i. u is the arc's
// source, v its target; i ranges over [0, l).
//
// For Trivalency, the bucket selecting which of the three probabilities
// applies is the same (u,v,i) hash taken mod 3, and that same hash is then
// compared against the chosen threshold — the SKIM-side formulation
// (index chosen and applied to the *same* hash); see DESIGN.md for the
// oracle-side variant this diverges from.
func (o *Oracle) Contained(u, v uint32, i uint16) bool {
	h := murmur3Hash(o.seed, o.l, u, v, i)
	switch o.model {
	case Weighted:
		assert.Must(int(v) < len(o.indeg), "vertex %d out of range for indegree table of size %d", v, len(o.indeg))
		deg := o.indeg[v]
		if deg == 0 {
			return false // no arc can terminate at v with zero indegree; defensive only
		}
		prob := Resolution
		if byDeg := Resolution / deg; byDeg < prob {
			prob = byDeg
		}
		return h%Resolution < prob
	case Binary:
		return h%Resolution < o.binProb
	case Trivalency:
		index := h % uint32(len(triProb))
		return h%Resolution < triProb[index]
	default:
		panic(fmt.Sprintf("assertion failed: unknown diffusion model %v", o.model))
	}
}
