package skim

import "github.com/gilchrisn/skim/internal/assert"

// bucketSet partitions vertices by their current sketchSize, so that once
// the rank stream is exhausted (saturated), Phase B can find "the vertex
// with the highest remaining sketch size" in O(1) instead of scanning all
// n vertices every iteration.
//
// Grounded on original_source/src/SKIM.h's buck/buckind arrays: buck[s]
// lists every vertex currently at size s; buckind[v] records v's index
// within its own bucket so it can be removed by swap-with-back in O(1).
type bucketSet struct {
	buck    [][]uint32 // buck[s], s in [0,k]
	buckind []uint32
	top     uint16 // highest bucket index known to possibly be non-empty
}

// buildBuckets snapshots the current sketchSizes into buckets, called
// exactly once when SKIM first saturates (spec.md §4.5 Phase A->B
// transition).
func buildBuckets(sketchSizes []uint16, k int) *bucketSet {
	b := &bucketSet{
		buck:    make([][]uint32, k+1),
		buckind: make([]uint32, len(sketchSizes)),
	}
	for v, s := range sketchSizes {
		if s == 0 {
			continue
		}
		b.buckind[v] = uint32(len(b.buck[s]))
		b.buck[s] = append(b.buck[s], uint32(v))
		if s > b.top {
			b.top = s
		}
	}
	return b
}

// highestNonEmpty descends top until it finds a non-empty bucket, or
// returns (0, false) if every bucket is empty (total coverage reached).
func (b *bucketSet) highestNonEmpty() (uint16, bool) {
	for b.top > 0 && len(b.buck[b.top]) == 0 {
		b.top--
	}
	if b.top == 0 {
		return 0, false
	}
	return b.top, true
}

// peekTop returns (without removing) the vertex at the back of the
// highest non-empty bucket — SKIM picks seeds from the back because
// swap-to-back delete elsewhere in the structure always fills gaps from
// the back, so the back entry is cheap to validate is still present.
func (b *bucketSet) peekTop(bucket uint16) uint32 {
	list := b.buck[bucket]
	assert.Must(len(list) > 0, "peekTop called on empty bucket %d", bucket)
	return list[len(list)-1]
}

// remove extracts v from bucket s via swap-with-back, matching
// original_source/src/SKIM.h's erase sequence exactly (erase v's entry by
// swapping it with the bucket's last element, then truncating).
func (b *bucketSet) remove(v uint32, s uint16) {
	list := b.buck[s]
	idx := b.buckind[v]
	last := uint32(len(list)) - 1
	b.buckind[list[last]] = idx
	list[idx], list[last] = list[last], list[idx]
	b.buck[s] = list[:last]
}

// add appends v to bucket s, recording its index for future removal.
func (b *bucketSet) add(v uint32, s uint16) {
	b.buckind[v] = uint32(len(b.buck[s]))
	b.buck[s] = append(b.buck[s], v)
	if s > b.top {
		b.top = s
	}
}

// decrement moves v from its current bucket (sketchSizes[v], read before
// the decrement) down to sketchSizes[v]-1, removing it from bucketing
// altogether if the new size is 0. sketchSizes[v] is mutated in place.
func (b *bucketSet) decrement(sketchSizes []uint16, v uint32) {
	s := sketchSizes[v]
	assert.Must(s > 0, "decrement called on vertex %d with sketchSize already 0", v)
	b.remove(v, s)
	if s > 1 {
		b.add(v, s-1)
	}
	sketchSizes[v] = s - 1
}
