package generator

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// PerturbationAngle is the rotation, in radians, applied to the first body to probe
// the rest of a contact patch.
const PerturbationAngle = 0.01

// OneShotGenerator builds a full manifold as soon as a pair starts touching, then
// tracks it incrementally.
//
// On first contact, the first body is tilted both ways around each direction
// perpendicular to the contact normal and the detector is run again for every tilt:
// the contacts found this way sample the whole contact patch. While the manifold is not
// empty, updates are left to an IncrementalGenerator.
type OneShotGenerator struct {
	incremental *IncrementalGenerator
}

func NewOneShotGenerator(detector Detector) *OneShotGenerator {
	return &OneShotGenerator{incremental: NewIncrementalGenerator(detector)}
}

func (g *OneShotGenerator) Update(d Dispatcher, id1 int, m1 actor.Transform, g1 actor.ShapeInterface, id2 int, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction, alloc *contact.IdAllocator) bool {
	if g.incremental.NumContacts() != 0 {
		return g.incremental.Update(d, id1, m1, g1, id2, m2, g2, prediction, alloc)
	}

	inc := g.incremental
	inc.manifold.SetSubshapeID1(id1)
	inc.manifold.SetSubshapeID2(id2)
	inc.points = inc.points[:0]

	if c, ok := inc.AddNewContacts(m1, g1, m2, g2, prediction); ok {
		tangent1, tangent2 := actor.TangentBasis(c.Normal)
		for _, tangent := range [2]mgl64.Vec3{tangent1, tangent2} {
			axis := c.Normal.Cross(tangent).Mul(PerturbationAngle)
			inc.AddNewContacts(m1.RotatedAroundCenter(axis), g1, m2, g2, prediction)
			inc.AddNewContacts(m1.RotatedAroundCenter(axis.Mul(-1)), g1, m2, g2, prediction)
		}
		inc.UpdateContacts(m1, m2, prediction)
	}

	inc.syncManifold(alloc)
	return true
}

func (g *OneShotGenerator) NumContacts() int {
	return g.incremental.NumContacts()
}

func (g *OneShotGenerator) Contacts(out []*contact.ContactManifold) []*contact.ContactManifold {
	return g.incremental.Contacts(out)
}

func (g *OneShotGenerator) Release(alloc *contact.IdAllocator) {
	g.incremental.Release(alloc)
}
