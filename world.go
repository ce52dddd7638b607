// Package narrowphase runs the collision detection of a set of posed shapes: a spatial
// grid broad phase, then one persistent contact generator per pair of bodies.
package narrowphase

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/akmonengine/narrowphase/generator"
	"github.com/akmonengine/narrowphase/metrics"
)

const DEFAULT_WORKERS = 1

// World tracks the contacts between its bodies from one Step to the next.
// Bodies are moved from outside, with RigidBody.SetTransform, between steps.
type World struct {
	// List of all bodies in the world
	Bodies      []*actor.RigidBody
	SpatialGrid *SpatialGrid
	Workers     int
	// Prediction is the margin under which separated shapes still get contacts
	Prediction contact.ContactPrediction
	// Dispatcher picks the generator of new pairs, generator.DefaultDispatcher if nil
	Dispatcher generator.Dispatcher
	// Metrics may be nil
	Metrics *metrics.Recorder

	Events Events

	pairs map[pairKey]*trackedPair
	ids   *contact.IdAllocator
}

// AddBody adds a body to the world
func (w *World) AddBody(body *actor.RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a body from the world and releases the contacts of its pairs
func (w *World) RemoveBody(body *actor.RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}

	if w.pairs != nil {
		w.releasePairs(func(key pairKey) bool { return key.bodyA == body || key.bodyB == body })
	}
	w.Events.forget(body)
}

// Step refreshes the bounding boxes, finds the candidate pairs and updates their
// contact generators. It returns the non-empty manifolds of non-trigger pairs, in
// body order.
func (w *World) Step() []PairManifolds {
	w.init()

	task(w.Workers, w.Bodies, func(body *actor.RigidBody) {
		body.Shape.ComputeAABB(body.Transform)
	})

	candidates := BroadPhase(w.SpatialGrid, w.Bodies, w.Prediction.Linear, w.Workers)
	manifolds := w.NarrowPhase(candidates)

	w.Events.flush()
	w.Metrics.ObserveStep(len(w.pairs), w.ids.InUse())

	return manifolds
}

// ContactIDsInUse returns the number of contact ids held by the tracked pairs.
func (w *World) ContactIDsInUse() int {
	if w.ids == nil {
		return 0
	}
	return w.ids.InUse()
}

// TrackedPairs returns the number of pairs owning a contact generator.
func (w *World) TrackedPairs() int {
	return len(w.pairs)
}

func (w *World) init() {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	if w.SpatialGrid == nil {
		w.SpatialGrid = NewSpatialGrid(DEFAULT_CELL_SIZE, DEFAULT_CELL_COUNT)
	}
	if w.Dispatcher == nil {
		w.Dispatcher = generator.DefaultDispatcher{}
	}
	if w.pairs == nil {
		w.pairs = make(map[pairKey]*trackedPair)
	}
	if w.ids == nil {
		w.ids = contact.NewIdAllocator()
	}
	w.Events.init()
}
