// Package bfs provides the reusable BFS frontier and pruned traversal
// engine shared by SKIM's sketch construction, its coverage propagation,
// and the influence oracle's preprocessing BFSes.
package bfs

import "github.com/gilchrisn/skim/internal/assert"

// FastSet is an O(1) insert/contains membership set over a bounded
// integer key universe [0, n), backed by a dense presence slice plus a
// dynamic list of the currently-contained keys. The list is what makes
// Clear and iteration over members O(size) instead of O(n).
//
// Modeled directly on the Microsoft SKIM source's FastSet<keyType>
// (DataStructures::Container::FastSet): swap-to-back delete, index-based
// access so callers can use it as both a set and a growable queue.
type FastSet struct {
	isContained   []bool
	containedKeys []uint32
}

// NewFastSet builds a FastSet over the key universe [0, numElements).
func NewFastSet(numElements uint32) *FastSet {
	return &FastSet{isContained: make([]bool, numElements)}
}

// Resize grows the key universe. The set never shrinks.
func (s *FastSet) Resize(numElements uint32) {
	assert.Must(numElements >= uint32(len(s.isContained)), "FastSet.Resize must grow, got %d < %d", numElements, len(s.isContained))
	if numElements == uint32(len(s.isContained)) {
		return
	}
	grown := make([]bool, numElements)
	copy(grown, s.isContained)
	s.isContained = grown
}

// Size returns the number of keys currently contained.
func (s *FastSet) Size() int { return len(s.containedKeys) }

// IsEmpty reports whether the set has no members.
func (s *FastSet) IsEmpty() bool { return len(s.containedKeys) == 0 }

// KeyByIndex returns the key at position index in insertion/compaction
// order. Used by the BFS engine to iterate the frontier as a FIFO queue
// while new keys are still being appended.
func (s *FastSet) KeyByIndex(index int) uint32 {
	assert.Must(index >= 0 && index < len(s.containedKeys), "FastSet.KeyByIndex(%d) out of range [0,%d)", index, len(s.containedKeys))
	return s.containedKeys[index]
}

// IsContained reports whether key is currently in the set.
func (s *FastSet) IsContained(key uint32) bool {
	assert.Must(int(key) < len(s.isContained), "FastSet.IsContained(%d) out of range [0,%d)", key, len(s.isContained))
	return s.isContained[key]
}

// Insert adds key to the set if not already present; a no-op otherwise.
func (s *FastSet) Insert(key uint32) {
	assert.Must(int(key) < len(s.isContained), "FastSet.Insert(%d) out of range [0,%d)", key, len(s.isContained))
	if !s.isContained[key] {
		s.containedKeys = append(s.containedKeys, key)
		s.isContained[key] = true
	}
}

// DeleteByIndex removes the key at position index using swap-to-back,
// which reorders containedKeys but keeps deletion O(1).
func (s *FastSet) DeleteByIndex(index int) uint32 {
	assert.Must(index >= 0 && index < len(s.containedKeys), "FastSet.DeleteByIndex(%d) out of range [0,%d)", index, len(s.containedKeys))
	key := s.containedKeys[index]
	s.isContained[key] = false
	last := len(s.containedKeys) - 1
	s.containedKeys[index] = s.containedKeys[last]
	s.containedKeys = s.containedKeys[:last]
	return key
}

// DeleteBack removes and returns the most recently appended key.
func (s *FastSet) DeleteBack() uint32 {
	assert.Must(len(s.containedKeys) > 0, "FastSet.DeleteBack on empty set")
	last := len(s.containedKeys) - 1
	key := s.containedKeys[last]
	s.isContained[key] = false
	s.containedKeys = s.containedKeys[:last]
	return key
}

// Clear empties the set, resetting presence bits for every current
// member without touching unrelated entries.
func (s *FastSet) Clear() {
	for _, key := range s.containedKeys {
		s.isContained[key] = false
	}
	s.containedKeys = s.containedKeys[:0]
}

// ContainedKeys exposes the current members in internal order. Callers
// must not mutate the returned slice.
func (s *FastSet) ContainedKeys() []uint32 { return s.containedKeys }
