package generator

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// BallBallGenerator computes the contact of two balls.
type BallBallGenerator struct {
	manifold *contact.ContactManifold
}

func NewBallBallGenerator() *BallBallGenerator {
	return &BallBallGenerator{manifold: contact.NewContactManifold(1)}
}

func (g *BallBallGenerator) Update(_ Dispatcher, id1 int, m1 actor.Transform, g1 actor.ShapeInterface, id2 int, m2 actor.Transform, g2 actor.ShapeInterface, prediction contact.ContactPrediction, alloc *contact.IdAllocator) bool {
	g.manifold.SetSubshapeID1(id1)
	g.manifold.SetSubshapeID2(id2)

	ball1, ok1 := g1.(*actor.Sphere)
	ball2, ok2 := g2.(*actor.Sphere)
	if !ok1 || !ok2 {
		return false
	}

	g.manifold.SaveCacheAndClear(alloc)

	center1 := m1.Translation()
	center2 := m2.Translation()

	normal := mgl64.Vec3{0, 1, 0}
	delta := center2.Sub(center1)
	distance := delta.Len()
	if distance > surfaceEpsilon {
		normal = delta.Mul(1 / distance)
	}

	depth := ball1.Radius + ball2.Radius - distance
	if depth < -prediction.Linear {
		return true
	}

	kinematic := contact.NewContactKinematic()
	kinematic.SetPoint1(actor.Face(0), mgl64.Vec3{}, actor.NewPolyhedralCone())
	kinematic.SetDilation1(ball1.Radius)
	kinematic.SetPoint2(actor.Face(0), mgl64.Vec3{}, actor.NewPolyhedralCone())
	kinematic.SetDilation2(ball2.Radius)

	c := contact.NewContact(center1.Add(normal.Mul(ball1.Radius)), center2.Sub(normal.Mul(ball2.Radius)), normal, depth)
	g.manifold.Push(c, kinematic, alloc)
	return true
}

func (g *BallBallGenerator) NumContacts() int {
	return g.manifold.Len()
}

func (g *BallBallGenerator) Contacts(out []*contact.ContactManifold) []*contact.ContactManifold {
	if g.manifold.Len() != 0 {
		out = append(out, g.manifold)
	}
	return out
}

func (g *BallBallGenerator) Release(alloc *contact.IdAllocator) {
	g.manifold.Clear(alloc)
}
