package sketch

import "math/rand"

// InstanceRank is one (rank, source) pair assigned to a particular
// instance, as produced by NewOracleRankPlan.
type InstanceRank struct {
	Rank   uint64
	Source uint32
}

// OracleRankPlan is the oracle's one-shot alternative to SkimRankStream:
// rather than drawing pairs incrementally, it materializes a single
// Fisher-Yates permutation of [0, n·ℓ) up front and decomposes every slot
// into an (instance, source) pair, then groups by instance so
// preprocessing can process one instance at a time in rank order.
//
// Deliberately not unified with SkimRankStream — spec.md §9 treats the
// two sampling schemes as genuinely distinct, not two implementations of
// one abstraction, since SKIM never materializes the full permutation and
// the oracle always does. See DESIGN.md.
type OracleRankPlan struct {
	n uint32
	l uint16
	// ByInstance[i] holds exactly n entries: the (rank, source) pairs
	// assigned to instance i, already in increasing rank order because
	// the permutation is scanned front-to-back when building this.
	ByInstance [][]InstanceRank
}

// NewOracleRankPlan draws a Fisher-Yates permutation of [0, n·ℓ) seeded
// from seed, and decomposes slot r into instance = permutation[r] / n,
// source = permutation[r] % n, matching
// original_source/src/RSInfluenceOracle.h's RunPreprocessing.
func NewOracleRankPlan(n uint32, l uint16, seed uint64) *OracleRankPlan {
	nl := uint64(n) * uint64(l)
	perm := make([]uint64, nl)
	for r := range perm {
		perm[r] = uint64(r)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	byInstance := make([][]InstanceRank, l)
	for i := range byInstance {
		byInstance[i] = make([]InstanceRank, 0, n)
	}
	for r, v := range perm {
		instance := uint16(v / uint64(n))
		source := uint32(v % uint64(n))
		byInstance[instance] = append(byInstance[instance], InstanceRank{Rank: uint64(r), Source: source})
	}

	return &OracleRankPlan{n: n, l: l, ByInstance: byInstance}
}

// Sentinel is the rank-space size n·ℓ, used as τ_s for sketches that never
// filled to k (spec.md §4.6).
func (p *OracleRankPlan) Sentinel() uint64 { return uint64(p.n) * uint64(p.l) }
