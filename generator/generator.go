// Package generator holds the contact generators of the narrow phase. A generator is
// created for one pair of shapes, owns that pair's contact manifold and is updated
// once per step with both poses.
package generator

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
)

// ContactGenerator produces the contact manifold of one shape pair. A generator is not
// safe for concurrent use.
type ContactGenerator interface {
	// Update recomputes the contacts of shape g1 (subshape id1) at m1 and shape g2
	// (subshape id2) at m2. It returns false when the generator does not handle these
	// shapes, letting the caller try another one.
	Update(d Dispatcher, id1 int, m1 actor.Transform, g1 actor.ShapeInterface, id2 int, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction, alloc *contact.IdAllocator) bool
	// NumContacts returns the number of contacts of the last update.
	NumContacts() int
	// Contacts appends the non-empty manifolds to out.
	Contacts(out []*contact.ContactManifold) []*contact.ContactManifold
	// Release returns every contact id to alloc. The generator is empty afterwards.
	Release(alloc *contact.IdAllocator)
}

// Dispatcher selects the generator of a pair of shapes.
type Dispatcher interface {
	Generator(g1, g2 actor.ShapeInterface) (ContactGenerator, bool)
}

// polyhedron is a shape usable on the polyhedral side of ball generators.
type polyhedron interface {
	actor.PointQuery
	actor.ConvexPolyhedron
}

// DefaultDispatcher uses the closed forms for balls and the one-shot generator over
// GJK and EPA for every other pair.
type DefaultDispatcher struct{}

func (DefaultDispatcher) Generator(g1, g2 actor.ShapeInterface) (ContactGenerator, bool) {
	_, ball1 := g1.(*actor.Sphere)
	_, ball2 := g2.(*actor.Sphere)
	_, poly1 := g1.(polyhedron)
	_, poly2 := g2.(polyhedron)

	switch {
	case ball1 && ball2:
		return NewBallBallGenerator(), true
	case ball1 && poly2:
		return NewBallConvexPolyhedronGenerator(false), true
	case poly1 && ball2:
		return NewBallConvexPolyhedronGenerator(true), true
	case g1 != nil && g2 != nil:
		return NewOneShotGenerator(SupportMapDetector{}), true
	}
	return nil, false
}
