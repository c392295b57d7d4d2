package skim

// enterSaturation snapshots the current sketchSizes into size buckets,
// called exactly once the first time the rank stream is exhausted without
// a seed emerging.
func (r *Runner) enterSaturation() {
	r.buckets = buildBuckets(r.sketchSizes, r.k)
	r.saturated = true
}

// phaseB picks the next seed from the highest non-empty bucket once
// saturated, estimating its marginal influence directly from its current
// sketch size (spec.md §4.5 Phase B). Returns ok=false when every bucket
// is empty — total coverage has been reached and no vertex remains to
// pick.
func (r *Runner) phaseB() (Seed, bool) {
	bucket, ok := r.buckets.highestNonEmpty()
	if !ok {
		return Seed{}, false
	}
	v := r.buckets.peekTop(bucket)
	est := float64(r.sketchSizes[v]) / float64(r.l)
	return Seed{VertexID: v, EstimatedInfluence: est, FromSaturation: true}, true
}
