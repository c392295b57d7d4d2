// Package eval turns the influence oracle's raw exact-simulation samples
// and SKIM's exact-coverage seed sequence into the summary numbers spec.md
// §8's testable properties are phrased against: mean and spread of a
// Monte-Carlo estimate, relative error between an estimate and its ground
// truth, and (for cmd/skim's optional coverage-trace companion) a PageRank
// pass over the seed-induced subgraph.
//
// Grounded on gonum usage precedent in the example pack
// (graph-clustering-backend/src2/algorithm/coordinates/mds.go imports
// gonum.org/v1/gonum/stat/mds and gonum.org/v1/gonum/mat; this package uses
// the sibling gonum.org/v1/gonum/stat package's plain summary-statistics
// functions, which the pack does not call directly but which live in the
// same module the pack already depends on).
package eval

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary reports the spread of lEval exact-simulation samples for one seed
// set: their mean (the same number oracle.Oracle.ComputeInfluence returns),
// and enough spread information to say how tight that mean is.
type Summary struct {
	N               int
	Mean            float64
	Variance        float64
	StdDev          float64
	MarginOfError95 float64 // half-width of a normal-approximation 95% CI on the mean
}

// Summarize reduces per-instance exact-simulation sample counts (as
// produced by oracle.Oracle.SimulateSamples) to a Summary. Samples with
// fewer than two entries have Variance, StdDev, and MarginOfError95 held at
// zero, since gonum's Variance is undefined below n=2.
func Summarize(samples []float64) Summary {
	n := len(samples)
	mean := stat.Mean(samples, nil)
	s := Summary{N: n, Mean: mean}
	if n < 2 {
		return s
	}
	s.Variance = stat.Variance(samples, nil)
	s.StdDev = math.Sqrt(s.Variance)
	s.MarginOfError95 = 1.96 * s.StdDev / math.Sqrt(float64(n))
	return s
}

// RelativeError reports |estimated-exact|/exact, the quantity spec.md §8
// scenario 5 bounds at 15%. Returns 0 when exact is 0 and estimated is also
// 0 (a vacuous match), and +Inf when exact is 0 but estimated is not.
func RelativeError(estimated, exact float64) float64 {
	if exact == 0 {
		if estimated == 0 {
			return 0
		}
		return math.Inf(1)
	}
	diff := estimated - exact
	if diff < 0 {
		diff = -diff
	}
	return diff / exact
}
