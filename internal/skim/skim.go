// Package skim implements the greedy influence-maximization loop:
// build combined bottom-k reachability sketch sizes incrementally via a
// rank stream, pick the vertex whose sketch first fills to k as the next
// seed (or fall back to bucketed saturation once the stream runs dry),
// then propagate that seed's exact coverage across all ℓ instances,
// decrementing the sketch sizes of everything made redundant by the new
// coverage.
//
// Grounded throughout on original_source/src/SKIM.h's main loop
// (constructor through the end of the per-seed iteration), restructured
// into named phases per spec.md §4.5 instead of one 300-line function.
package skim

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gilchrisn/skim/internal/assert"
	"github.com/gilchrisn/skim/internal/bfs"
	"github.com/gilchrisn/skim/internal/diffusion"
	"github.com/gilchrisn/skim/internal/graphio"
	"github.com/gilchrisn/skim/internal/sketch"
)

// progressInterval caps how often Run's Info-level progress line fires.
// The per-seed Debug line below it is unthrottled, since Debug output is
// typically off entirely; the Info line is what a long run watches on an
// otherwise quiet terminal, so it is rate-limited instead of once-per-seed.
const progressInterval = 500 * time.Millisecond

// Config mirrors the SKIM-relevant CLI flags (spec.md §6.1).
type Config struct {
	K       int
	L       uint16
	N       uint32 // target seed-set size; 0 means "target n" per the CLI rule
	Threads int
	Seed    uint64
}

// Seed is one entry of the greedy seed sequence, carrying both the
// Phase A/B estimate that justified picking it and the exact influence
// Phase C measured once it was picked.
type Seed struct {
	VertexID            uint32
	EstimatedInfluence  float64
	ExactInfluence      float64
	CumulativeInfluence float64
	Rank                uint64 // rank at selection time; 0 for saturation picks
	FromSaturation      bool
}

// Runner owns all of SKIM's mutable greedy-loop state across iterations:
// the rank stream, sketch size counters, inverse index, per-instance
// coverage, and (once saturated) the size-bucketed vertex lists.
type Runner struct {
	g      *graphio.Graph
	oracle *diffusion.Oracle
	cfg    Config
	log    zerolog.Logger

	n uint32
	l uint16
	k int

	stream      *sketch.SkimRankStream
	sketchSizes []uint16
	inv         *sketch.InverseIndex
	covered     [][]bool // covered[i][v]
	saturated   bool
	buckets     *bucketSet

	engines []*bfs.Engine // one reusable BFS engine per Phase C worker

	progress *rate.Limiter
}

// NewRunner builds a Runner ready to produce seeds for g under cfg.
func NewRunner(g *graphio.Graph, oracle *diffusion.Oracle, cfg Config, log zerolog.Logger) *Runner {
	n := g.NumVertices()
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	covered := make([][]bool, cfg.L)
	for i := range covered {
		covered[i] = make([]bool, n)
	}
	engines := make([]*bfs.Engine, threads)
	for t := range engines {
		engines[t] = bfs.NewEngine(n)
	}
	return &Runner{
		g:           g,
		oracle:      oracle,
		cfg:         cfg,
		log:         log,
		n:           n,
		l:           cfg.L,
		k:           cfg.K,
		stream:      sketch.NewSkimRankStream(n, cfg.L, cfg.Seed),
		sketchSizes: make([]uint16, n),
		inv:         sketch.NewInverseIndex(),
		covered:     covered,
		engines:     engines,
		progress:    rate.NewLimiter(rate.Every(progressInterval), 1),
	}
}

// target resolves the CLI's "N=0 means n" rule (spec.md §8 boundary
// behavior).
func (r *Runner) target() uint32 {
	if r.cfg.N == 0 {
		return r.n
	}
	return r.cfg.N
}

// Run executes the full greedy loop and returns the seed sequence with
// cumulative exact influence tracked per spec.md §8 property 5 (it must
// be non-decreasing).
func (r *Runner) Run() []Seed {
	var seeds []Seed
	cumulative := 0.0

	for uint32(len(seeds)) < r.target() {
		newSeed, ok := r.pickSeed()
		if !ok {
			r.log.Info().Int("seeds", len(seeds)).Msg("TOTAL COVERAGE REACHED")
			break
		}

		exact := r.propagateCoverage(newSeed.VertexID)
		newSeed.ExactInfluence = exact / float64(r.l)
		cumulative += newSeed.ExactInfluence
		newSeed.CumulativeInfluence = cumulative
		if len(seeds) > 0 {
			assert.Must(cumulative >= seeds[len(seeds)-1].CumulativeInfluence,
				"cumulative exact influence decreased: %v after %v", cumulative, seeds[len(seeds)-1].CumulativeInfluence)
		}

		seeds = append(seeds, newSeed)
		if r.progress.Allow() {
			r.log.Info().
				Int("seeds", len(seeds)).
				Uint32("target", r.target()).
				Float64("cumulative", cumulative).
				Msg("progress")
		}
		r.log.Debug().
			Uint32("vertex", newSeed.VertexID).
			Float64("estimated", newSeed.EstimatedInfluence).
			Float64("exact", newSeed.ExactInfluence).
			Float64("cumulative", cumulative).
			Bool("saturated", newSeed.FromSaturation).
			Msg("seed selected")
	}
	return seeds
}

// pickSeed runs Phase A (if the rank stream is not yet exhausted) or
// Phase B (bucketed saturation fallback), returning false only when the
// saturation buckets are entirely empty (total coverage reached).
func (r *Runner) pickSeed() (Seed, bool) {
	if !r.saturated {
		if seed, ok := r.phaseA(); ok {
			return seed, true
		}
		r.enterSaturation()
	}
	return r.phaseB()
}
