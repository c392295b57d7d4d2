package sketch

import "math/rand"

// SkimRankStream generates the (rank, source, instance) sequence SKIM
// consumes during Phase A, without ever materializing the full
// permutation of [0, n·ℓ): it keeps a permutation of [0, n) that gets
// reshuffled every time rank wraps around a multiple of n, and a
// processed[instance][vertex] bit matrix recording which (source,
// instance) pairs have already been drawn. This guarantees the stream's
// invariant: every (source, instance) pair is visited exactly once across
// the whole run.
//
// Grounded on original_source/src/SKIM.h's inline permutation/`distr`
// logic inside the main loop (lines ~137-169), factored out into its own
// type per spec.md §4.3.
type SkimRankStream struct {
	n       uint32
	l       uint16
	rng     *rand.Rand
	perm    []uint32
	numperm uint32
	rank    uint64
	nl      uint64
	// processed[i][source] tracks whether (source, i) has already been
	// drawn; indexed [instance][vertex] to mirror the original's layout.
	processed [][]bool

	// permthresh mirrors `l - (l/10 + 1)`: once numperm reaches this many
	// full passes over the vertex permutation, the cheap rejection-sampling
	// regime below risks too many retries (too few free instances remain
	// per source), so the stream switches to a linear scan over the
	// not-yet-processed instances.
	permthresh uint32
}

// NewSkimRankStream builds a stream over n vertices and l instances, seeded
// deterministically from seed.
func NewSkimRankStream(n uint32, l uint16, seed uint64) *SkimRankStream {
	processed := make([][]bool, l)
	for i := range processed {
		processed[i] = make([]bool, n)
	}
	lu := uint32(l)
	permthresh := uint32(0)
	if lu > lu/10+1 {
		permthresh = lu - (lu/10 + 1)
	}
	return &SkimRankStream{
		n:          n,
		l:          l,
		rng:        rand.New(rand.NewSource(int64(seed))),
		processed:  processed,
		nl:         uint64(n) * uint64(l),
		permthresh: permthresh,
	}
}

// Rank returns the number of (source, instance) pairs drawn so far.
func (s *SkimRankStream) Rank() uint64 { return s.rank }

// Exhausted reports whether every (source, instance) pair has been drawn.
func (s *SkimRankStream) Exhausted() bool { return s.rank >= s.nl }

// Next draws the next (source, instance) pair and advances rank. Callers
// must check Exhausted before calling Next.
func (s *SkimRankStream) Next() (source uint32, instance uint16) {
	vi := uint32(s.rank % uint64(s.n))
	if vi == 0 {
		s.reshuffle()
	}
	source = s.perm[vi]

	if s.numperm < s.permthresh {
		for {
			instance = uint16(s.rng.Intn(int(s.l)))
			if !s.processed[instance][source] {
				break
			}
		}
	} else {
		free := int(s.l) - int(s.numperm) + 1
		if free < 1 {
			free = 1
		}
		draw := s.rng.Intn(free)
		for j := uint16(0); j < s.l; j++ {
			if !s.processed[j][source] {
				if draw == 0 {
					instance = j
					break
				}
				draw--
			}
		}
	}

	s.processed[instance][source] = true
	s.rank++
	return source, instance
}

func (s *SkimRankStream) reshuffle() {
	if uint32(len(s.perm)) != s.n {
		s.perm = make([]uint32, s.n)
		for u := uint32(0); u < s.n; u++ {
			s.perm[u] = u
		}
	}
	s.rng.Shuffle(len(s.perm), func(i, j int) {
		s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
	})
	s.numperm++
}
