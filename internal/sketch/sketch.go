// Package sketch implements the Combined Bottom-k Reachability Sketch
// primitives: the per-vertex sorted rank list, the sorted-union merge
// used to combine per-instance local sketches, the inverse index that
// lets coverage propagation find which sketches reference a given rank,
// and the two rank-stream sampling schemes (SKIM's incremental scheme and
// the oracle's one-shot permutation).
package sketch

// Sketch holds the k smallest "ranks" reachable to a vertex, across
// however many diffusion instances have been folded in. Ranks are kept
// sorted ascending; once len(ranks) == k, the sketch is full and MergeSorted
// trims any further growth back down to k.
//
// Grounded on the teacher's VertexBottomKSketch
// (pkg/scar/vertex_bottom_k_sketch.go), simplified from its multi-layer
// (nk-hash-function) shape down to the single combined sketch spec.md
// §3/§9 calls for — CBRS has one sketch per vertex, not one per hash
// layer, so the teacher's `layer` dimension collapses to a plain sorted
// slice here.
type Sketch struct {
	ranks []uint64
	k     int
}

// New returns an empty sketch with capacity k.
func New(k int) *Sketch {
	return &Sketch{ranks: make([]uint64, 0, k), k: k}
}

// Len returns the number of ranks currently held (≤ k).
func (s *Sketch) Len() int { return len(s.ranks) }

// Full reports whether the sketch holds exactly k ranks.
func (s *Sketch) Full() bool { return len(s.ranks) == s.k }

// Ranks exposes the sorted ranks read-only.
func (s *Sketch) Ranks() []uint64 { return s.ranks }

// Tau returns the sketch's effective threshold rank: the largest rank it
// holds if full, or sentinel (conventionally n·ℓ, the rank space size)
// if not yet full. This is τ_s in the estimator (spec.md §4.6).
func (s *Sketch) Tau(sentinel uint64) uint64 {
	if s.Full() {
		return s.ranks[len(s.ranks)-1]
	}
	return sentinel
}

// AppendIncreasing appends rank to the sketch, assuming the caller only
// ever calls this with non-decreasing rank values for a given sketch (true
// during one instance's preprocessing BFS pass, since ranks are visited
// in increasing order). It is a no-op once the sketch is full — this is
// the "prune if |localSketch[u]| >= k" rule in spec.md §4.4.
func (s *Sketch) AppendIncreasing(rank uint64) {
	if s.Full() {
		return
	}
	s.ranks = append(s.ranks, rank)
}

// Clear empties the sketch without releasing its backing array, so it can
// be reused as the next instance's local sketch (spec.md §4.4: "clear the
// local sketches" after each instance's merge).
func (s *Sketch) Clear() { s.ranks = s.ranks[:0] }

// MergeSorted merges other (already sorted ascending, with no duplicates
// against itself) into s by sorted union, trimming the result to k. This
// is the teacher's bottomKUnion (pkg/scar/vertex_bottom_k_sketch.go)
// generalized from fixed-length MaxUint32-padded arrays to variable-length
// uint64 slices, since CBRS ranks span the full [0, n·ℓ) space rather
// than a 32-bit hash space.
func (s *Sketch) MergeSorted(other []uint64) {
	if len(other) == 0 {
		return
	}
	merged := make([]uint64, 0, s.k)
	i, j := 0, 0
	for len(merged) < s.k && (i < len(s.ranks) || j < len(other)) {
		switch {
		case j >= len(other) || (i < len(s.ranks) && s.ranks[i] < other[j]):
			merged = append(merged, s.ranks[i])
			i++
		case i >= len(s.ranks) || other[j] < s.ranks[i]:
			merged = append(merged, other[j])
			j++
		default: // equal, both advance, value inserted once
			merged = append(merged, s.ranks[i])
			i++
			j++
		}
	}
	s.ranks = merged
}
