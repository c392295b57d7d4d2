// Package diffusion implements the edge-liveness oracle shared by SKIM and
// the influence oracle: a deterministic, seed-keyed hash of (u, v,
// instance) decides whether arc u->v is "live" in diffusion instance i,
// without ever materializing a per-instance live-edge graph.
package diffusion

// mm3C1, mm3C2 are the Murmur3 mixing constants, applied verbatim to
// match the original bit-for-bit across ports — see spec.md §4.1.
const (
	mm3C1 uint32 = 0xcc9e2d51
	mm3C2 uint32 = 0x1b873593
)

func rotl32(x uint32, r uint32) uint32 {
	return (x << r) | (x >> (32 - r))
}

func mm3Mix(h, k uint32) uint32 {
	k *= mm3C1
	k = rotl32(k, 15)
	k *= mm3C2
	h ^= k
	h = rotl32(h, 13)
	return h*5 + 0xe6546b64
}

// murmur3Hash reproduces the tailored three-value Murmur3-style hash of
// (u, v, instance): it folds u and v through the full mix-and-rotate step,
// folds the instance through only the k-mixing half (no rotate/scramble of
// h), then runs the standard avalanche finalizer. seed and l (the total
// instance count, ℓ) key the hash together via (seed<<16)+l, so the same
// (u,v,i) hashes differently across runs with different seeds or ℓ.
//
// This exact sequence, including which steps are skipped for the instance
// value, is load-bearing: spec.md §4.1 requires bit-identical results
// across implementations, and any reordering changes which edges are live
// in which instance.
func murmur3Hash(seed uint32, l uint16, u, v uint32, i uint16) uint32 {
	h := (seed << 16) + uint32(l)

	h = mm3Mix(h, u)
	h = mm3Mix(h, v)

	k := uint32(i)
	k *= mm3C1
	k = rotl32(k, 15)
	k *= mm3C2
	h ^= k

	h ^= 10 // length of the conceptual input, carried over from the original finalizer
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h
}
