package sketch

// Key packs a (source vertex, instance) pair into one u64, per spec.md
// §9's recommended cycle-breaking representation for the inverse sketch
// index: storing sketches as per-vertex arrays and the inverse index as a
// hash map keyed by (source, instance) avoids the sketch<->vertex
// ownership cycle the original's pointer-based structure has.
type Key uint64

// MakeKey packs (source, instance) into a Key. instance occupies the low
// 16 bits, leaving 32 bits for the vertex id (matching the graph's 30-bit
// vertex id space with headroom).
func MakeKey(source uint32, instance uint16) Key {
	return Key(uint64(source)<<16 | uint64(instance))
}

// Source unpacks the source vertex id from a Key.
func (k Key) Source() uint32 { return uint32(k >> 16) }

// Instance unpacks the instance id from a Key.
func (k Key) Instance() uint16 { return uint16(k) }

// InverseIndex maps (source, instance) pairs to the list of vertices whose
// sketch build visited them during that pair's BFS — i.e. for key (s,i),
// every vertex u such that s reaches u in instance i and u recorded rank
// r(s,i) in its sketch. When v's sketchSize needs to be decremented
// because rank r(s,i) has been superseded by coverage, this index tells
// the caller exactly which vertices to touch, without rescanning the
// whole graph.
//
// Grounded on spec.md §9's hash-map-keyed-by-packed-pair design and the
// original's `map<pair<uint32_t,uint16_t>, vector<uint32_t>> invSketches`
// (original_source/src/SKIM.h).
type InverseIndex struct {
	entries map[Key][]uint32
}

// NewInverseIndex returns an empty index.
func NewInverseIndex() *InverseIndex {
	return &InverseIndex{entries: make(map[Key][]uint32)}
}

// Append records that vertex belongs to the inverse-sketch list for key,
// creating the entry if this is its first member.
func (idx *InverseIndex) Append(key Key, vertex uint32) {
	idx.entries[key] = append(idx.entries[key], vertex)
}

// Get returns the vertices recorded for key, and whether the key exists
// at all (an empty-but-present entry is distinct from an absent one only
// in bookkeeping terms; callers in this codebase never append an empty
// list, so ok is effectively "was this (source,instance) pair ever
// visited by a sketch-building BFS").
func (idx *InverseIndex) Get(key Key) ([]uint32, bool) {
	v, ok := idx.entries[key]
	return v, ok
}

// Delete removes key's entry entirely. spec.md §4.5 notes this erasure is
// safe because a (source, instance) pair can never be re-covered once its
// inverse-sketch entry has been consumed by Phase C.
func (idx *InverseIndex) Delete(key Key) {
	delete(idx.entries, key)
}

// Len reports how many (source, instance) entries are currently tracked,
// for diagnostics and memory-footprint logging.
func (idx *InverseIndex) Len() int { return len(idx.entries) }
