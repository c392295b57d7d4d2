package graphio

// Arc packs a neighbor vertex id and two direction flags into a single
// 32-bit word, mirroring the teacher's WeightedEdge encoding
// (pkg/scar/sketch_graph.go) generalized to the bit-packed layout spec.md
// §3 requires: the low 30 bits hold the other endpoint, the top two bits
// hold the forward/backward flags.
type Arc uint32

const (
	otherVertexMask uint32 = 0x3FFFFFFF
	forwardFlag     uint32 = 0x40000000
	backwardFlag    uint32 = 0x80000000
)

// NewArc builds an arc pointing at other with the given direction flags.
func NewArc(other uint32, forward, backward bool) Arc {
	assertVertexFits(other)
	data := other & otherVertexMask
	if forward {
		data |= forwardFlag
	}
	if backward {
		data |= backwardFlag
	}
	return Arc(data)
}

func assertVertexFits(v uint32) {
	if v > otherVertexMask {
		panic("assertion failed: vertex id does not fit in 30 bits")
	}
}

// OtherVertex returns the neighbor endpoint of this arc.
func (a Arc) OtherVertex() uint32 { return uint32(a) & otherVertexMask }

// Forward reports whether this arc is traversable in the forward direction.
func (a Arc) Forward() bool { return uint32(a)&forwardFlag != 0 }

// Backward reports whether this arc is traversable in the backward (reverse
// graph) direction.
func (a Arc) Backward() bool { return uint32(a)&backwardFlag != 0 }

// Valid reports whether at least one direction flag is set, per spec.md's
// invariant that every arc has forward or backward (or both).
func (a Arc) Valid() bool { return uint32(a)&(forwardFlag|backwardFlag) != 0 }

// SetForward returns a with the forward flag set.
func (a Arc) SetForward() Arc { return Arc(uint32(a) | forwardFlag) }

// SetBackward returns a with the backward flag set.
func (a Arc) SetBackward() Arc { return Arc(uint32(a) | backwardFlag) }

// Direction selects which flag HasDirection tests.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// HasDirection reports whether the arc carries the given direction flag.
func (a Arc) HasDirection(d Direction) bool {
	if d == Forward {
		return a.Forward()
	}
	return a.Backward()
}
