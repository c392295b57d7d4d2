package oracle

import "github.com/gilchrisn/skim/internal/bfs"

// SeedMethod selects how GenerateSeedSet draws its random seed set.
type SeedMethod int

const (
	// Uniform samples n vertices uniformly at random, with replacement.
	Uniform SeedMethod = iota
	// Neighborhood samples vertices biased toward high-indegree
	// neighborhoods: repeatedly pick a random backward arc's tail,
	// grow a forward BFS from it out to roughly n vertices, then sample
	// without replacement from that local window.
	Neighborhood
)

// GenerateSeedSet draws a seed set of size n using method. Matches
// GenerateSeetSet's two branches (original_source/src/RSInfluenceOracle.h
// lines 381-436) — [sic] on the original's spelling is not carried over
// here, only the behavior.
func (o *Oracle) GenerateSeedSet(n uint64, method SeedMethod) []uint32 {
	switch method {
	case Uniform:
		return o.generateUniform(n)
	case Neighborhood:
		return o.generateNeighborhood(n)
	default:
		panic("assertion failed: unknown seed method")
	}
}

func (o *Oracle) generateUniform(n uint64) []uint32 {
	numVertices := int(o.g.NumVertices())
	S := make([]uint32, 0, n)
	for uint64(len(S)) < n {
		S = append(S, uint32(o.rng.Intn(numVertices)))
	}
	return S
}

// generateNeighborhood grows a seed set one BFS-sampled neighborhood at a
// time: sample a uniformly random arc, rejecting until it is a backward
// arc, take its tail as the BFS root, expand level by level until the
// frontier has grown past however many more vertices the seed set still
// needs (the "finalLevel" cutoff — expand one level past the target,
// never two), trim back to that point, then sample without replacement
// from the resulting window until either the window or the target is
// exhausted, repeating the whole arc-sample-and-BFS step if the seed set
// still needs more.
func (o *Oracle) generateNeighborhood(n uint64) []uint32 {
	numArcs := o.g.NumArcs()
	frontier := bfs.NewFastSet(o.g.NumVertices())

	S := make([]uint32, 0, n)
	for uint64(len(S)) < n {
		var source uint32
		for {
			id := o.rng.Intn(numArcs)
			a := o.g.ArcAt(id)
			if a.Backward() {
				source = a.OtherVertex()
				break
			}
		}

		frontier.Clear()
		frontier.Insert(source)
		o.levels[source] = 0
		cur := 0
		finalLevel := levelSentinel
		for cur < frontier.Size() {
			u := frontier.KeyByIndex(cur)
			cur++
			if o.levels[u] > finalLevel {
				break
			}
			remaining := n - uint64(len(S))
			if uint64(cur) >= remaining {
				finalLevel = o.levels[u]
			}
			if o.levels[u] == finalLevel {
				continue
			}
			for _, a := range o.g.Arcs(u) {
				if !a.HasDirection(bfs.Forward) {
					continue
				}
				v := a.OtherVertex()
				if frontier.IsContained(v) {
					continue
				}
				o.levels[v] = o.levels[u] + 1
				frontier.Insert(v)
			}
		}

		for _, key := range frontier.ContainedKeys() {
			o.levels[key] = levelSentinel
		}
		for frontier.Size() > cur {
			frontier.DeleteBack()
		}

		for uint64(len(S)) < n && !frontier.IsEmpty() {
			idx := o.rng.Intn(frontier.Size())
			S = append(S, frontier.DeleteByIndex(idx))
		}
	}
	return S
}
