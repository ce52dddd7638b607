package generator

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/akmonengine/narrowphase/epa"
	"github.com/akmonengine/narrowphase/gjk"
)

// Detector finds one representative contact between two shapes.
type Detector interface {
	Detect(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction) (contact.Contact, bool)
}

// SupportMapDetector works on any pair of shapes through their support functions:
// GJK and EPA when they overlap, the GJK distance query when they are separated by
// less than the prediction margin.
type SupportMapDetector struct{}

func (SupportMapDetector) Detect(m1 actor.Transform, g1 actor.ShapeInterface, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction) (contact.Contact, bool) {
	simplex := gjk.SimplexPool.Get().(*gjk.IntersectionSimplex)
	defer gjk.SimplexPool.Put(simplex)
	simplex.Reset()

	if gjk.GJK(m1, g1, m2, g2, simplex) {
		penetration, err := epa.EPA(m1, g1, m2, g2, simplex)
		if err != nil {
			return contact.Contact{}, false
		}
		return contact.NewContact(penetration.PointA, penetration.PointB, penetration.Normal, penetration.Depth), true
	}

	closest := gjk.ClosestPoints(m1, g1, m2, g2, prediction.Linear)
	if closest.Proximity != gjk.WithinMargin {
		return contact.Contact{}, false
	}
	return contact.NewContact(closest.PointA, closest.PointB, closest.Normal(), -closest.Distance), true
}
