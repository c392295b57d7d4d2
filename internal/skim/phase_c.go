package skim

import (
	"sync"

	"github.com/gilchrisn/skim/internal/bfs"
	"github.com/gilchrisn/skim/internal/sketch"
)

// invHit is one (vertex, instance) pair whose coverage during Phase C
// landed on an inverse-sketch entry, queued for sequential reconciliation
// after the parallel section joins.
type invHit struct {
	vertex   uint32
	instance uint16
}

// propagateCoverage runs a forward BFS from seed in every not-yet-covered
// instance, marking coverage and tallying exact influence, then
// sequentially reconciles every inverse-sketch hit collected along the
// way by decrementing the referenced vertices' sketch sizes (or bucket
// membership, once saturated).
//
// Concurrency model grounded on spec.md §5 and
// original_source/src/SKIM.h's OpenMP parallel-for-over-instances section
// (lines ~254-321): instances are partitioned across workers so
// covered[i] is single-writer per instance during the parallel phase,
// each worker accumulates a local hit queue, and only after every worker
// joins does the main goroutine drain those queues to mutate the shared
// sketchSizes/buckets/inverseSketches state.
func (r *Runner) propagateCoverage(seed uint32) float64 {
	threads := len(r.engines)
	hitQueues := make([][]invHit, threads)
	exactByWorker := make([]float64, threads)

	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			engine := r.engines[t]
			var exact float64
			var hits []invHit
			for i := uint16(t); i < r.l; i += uint16(threads) {
				live := func(a, b uint32, inst uint16) bool { return r.oracle.Contained(a, b, inst) }
				excluded := func(v uint32) bool { return r.covered[i][v] }
				engine.Run(r.g, seed, i, bfs.Forward, live, excluded, func(u uint32) bfs.Result {
					r.covered[i][u] = true
					exact++
					key := sketch.MakeKey(u, i)
					if _, ok := r.inv.Get(key); ok {
						hits = append(hits, invHit{vertex: u, instance: i})
					}
					return bfs.Continue
				})
			}
			exactByWorker[t] = exact
			hitQueues[t] = hits
		}(t)
	}
	wg.Wait()

	var total float64
	for t := 0; t < threads; t++ {
		total += exactByWorker[t]
		for _, h := range hitQueues[t] {
			key := sketch.MakeKey(h.vertex, h.instance)
			members, ok := r.inv.Get(key)
			if !ok {
				continue // already reconciled by an earlier hit in this same queue
			}
			for _, w := range members {
				if r.saturated {
					r.buckets.decrement(r.sketchSizes, w)
				} else {
					r.sketchSizes[w]--
				}
			}
			r.inv.Delete(key)
		}
	}
	return total
}
