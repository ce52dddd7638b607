package narrowphase

import (
	"sort"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/akmonengine/narrowphase/generator"
)

// PairManifolds are the contacts of one pair of bodies at the end of a step.
// Contacts go from BodyA to BodyB.
type PairManifolds struct {
	BodyA     *actor.RigidBody
	BodyB     *actor.RigidBody
	Manifolds []*contact.ContactManifold
}

// BroadPhase returns the pairs whose bounding boxes, grown by margin, overlap. Pairs are
// sorted by (IndexA, IndexB). Two static bodies, or two unbounded ones, are never
// paired.
func BroadPhase(spatialGrid *SpatialGrid, bodies []*actor.RigidBody, margin float64, workersCount int) []Pair {
	aabbs := make([]actor.AABB, len(bodies))
	var unbounded []int

	spatialGrid.Clear()
	for i, body := range bodies {
		aabbs[i] = body.Shape.GetAABB().Loosened(margin)
		if aabbs[i].IsUnbounded() {
			unbounded = append(unbounded, i)
			continue
		}
		spatialGrid.Insert(i, aabbs[i])
	}
	spatialGrid.SortCells()

	var pairs []Pair
	if workersCount > 1 {
		for pair := range spatialGrid.FindPairsParallel(bodies, aabbs, workersCount) {
			pairs = append(pairs, pair)
		}
	} else {
		pairs = spatialGrid.FindPairs(bodies, aabbs)
	}

	// Unbounded bodies are outside the grid: test them against everything
	for _, u := range unbounded {
		for i, body := range bodies {
			if i == u || aabbs[i].IsUnbounded() {
				continue
			}
			if body.BodyType == actor.BodyTypeStatic && bodies[u].BodyType == actor.BodyTypeStatic {
				continue
			}
			if !aabbs[u].Overlaps(aabbs[i]) {
				continue
			}
			a, b := min(u, i), max(u, i)
			pairs = append(pairs, Pair{BodyA: bodies[a], BodyB: bodies[b], IndexA: a, IndexB: b})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].IndexA != pairs[j].IndexA {
			return pairs[i].IndexA < pairs[j].IndexA
		}
		return pairs[i].IndexB < pairs[j].IndexB
	})
	return pairs
}

// trackedPair owns the contact generator of a pair of bodies for as long as the pair
// stays a broad-phase candidate.
type trackedPair struct {
	generator generator.ContactGenerator
	kind      string
	// body indices at the last step, for a deterministic release order
	indexA, indexB int
}

// NarrowPhase updates the generator of every candidate pair, creating it on the first
// step the pair appears, and releases the generators of pairs that are no longer
// candidates. Candidates must be sorted, so that contact ids are drawn in a
// deterministic order.
func (w *World) NarrowPhase(candidates []Pair) []PairManifolds {
	var result []PairManifolds
	current := make(map[pairKey]bool, len(candidates))

	for _, candidate := range candidates {
		key := pairKey{bodyA: candidate.BodyA, bodyB: candidate.BodyB}

		tracked, ok := w.pairs[key]
		if !ok {
			gen, found := w.Dispatcher.Generator(candidate.BodyA.Shape, candidate.BodyB.Shape)
			if !found {
				continue
			}
			tracked = &trackedPair{generator: gen, kind: generatorKind(gen)}
			w.pairs[key] = tracked
		}
		tracked.indexA, tracked.indexB = candidate.IndexA, candidate.IndexB
		current[key] = true

		applicable := tracked.generator.Update(w.Dispatcher,
			0, candidate.BodyA.Transform, candidate.BodyA.Shape,
			0, candidate.BodyB.Transform, candidate.BodyB.Shape,
			w.Prediction, w.ids)
		w.Metrics.ObserveUpdate(tracked.kind, applicable, tracked.generator.NumContacts())

		if !applicable || tracked.generator.NumContacts() == 0 {
			continue
		}

		manifolds := tracked.generator.Contacts(nil)
		for _, manifold := range manifolds {
			if deepest, ok := manifold.DeepestContact(); ok {
				w.Metrics.ObserveManifold(deepest.Contact.Depth)
			}
		}

		w.Events.recordContact(key)
		if candidate.BodyA.IsTrigger || candidate.BodyB.IsTrigger {
			continue
		}
		result = append(result, PairManifolds{
			BodyA:     candidate.BodyA,
			BodyB:     candidate.BodyB,
			Manifolds: manifolds,
		})
	}

	w.releasePairs(func(key pairKey) bool { return !current[key] })
	return result
}

// releasePairs drops the tracked pairs selected by gone, returning their contact ids.
func (w *World) releasePairs(gone func(key pairKey) bool) {
	var keys []pairKey
	for key := range w.pairs {
		if gone(key) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := w.pairs[keys[i]], w.pairs[keys[j]]
		if a.indexA != b.indexA {
			return a.indexA < b.indexA
		}
		return a.indexB < b.indexB
	})

	for _, key := range keys {
		w.pairs[key].generator.Release(w.ids)
		delete(w.pairs, key)
	}
}

func generatorKind(g generator.ContactGenerator) string {
	switch g.(type) {
	case *generator.BallBallGenerator:
		return "ball_ball"
	case *generator.BallConvexPolyhedronGenerator:
		return "ball_convex_polyhedron"
	case *generator.OneShotGenerator:
		return "one_shot"
	case *generator.IncrementalGenerator:
		return "incremental"
	}
	return "other"
}
